package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", "hireloop")
	assert.NotNil(t, err)
}

func TestVerifyRoundTrip(t *testing.T) {
	manager, err := NewManager("test-secret", "hireloop")
	assert.Nil(t, err)

	token, err := manager.Issue(time.Now(), "user-1", "ana@hireloop.io", time.Hour)
	assert.Nil(t, err)

	claims, err := manager.Verify(token)
	assert.Nil(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ana@hireloop.io", claims.Email)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuing, _ := NewManager("secret-a", "hireloop")
	verifying, _ := NewManager("secret-b", "hireloop")

	token, err := issuing.Issue(time.Now(), "user-1", "", time.Hour)
	assert.Nil(t, err)

	_, err = verifying.Verify(token)
	assert.NotNil(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager, _ := NewManager("test-secret", "hireloop")

	token, err := manager.Issue(time.Now().Add(-2*time.Hour), "user-1", "", time.Hour)
	assert.Nil(t, err)

	_, err = manager.Verify(token)
	assert.NotNil(t, err)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	issuing, _ := NewManager("test-secret", "someone-else")
	verifying, _ := NewManager("test-secret", "hireloop")

	token, err := issuing.Issue(time.Now(), "user-1", "", time.Hour)
	assert.Nil(t, err)

	_, err = verifying.Verify(token)
	assert.NotNil(t, err)
}

func TestIdentityContext(t *testing.T) {
	ctx := WithIdentity(context.Background(), "user-1", "ana@hireloop.io")

	userID, err := UserID(ctx)
	assert.Nil(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "ana@hireloop.io", Email(ctx))

	_, err = UserID(context.Background())
	assert.NotNil(t, err)
}
