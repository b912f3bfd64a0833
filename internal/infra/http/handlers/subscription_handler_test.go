package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hireloop/hireloop-api/internal/auth"
	"github.com/hireloop/hireloop-api/internal/entity"
)

func getStatus(h *SubscriptionHandler, ctx context.Context) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/subscription/status", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.HandleGetStatus(rec, req)
	return rec
}

func TestSubscriptionStatusDefaultsToFree(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	subRepo.On("FindByUserID", mock.Anything, "user-1").
		Return(nil, entity.ErrSubscriptionNotFound)

	h := NewSubscriptionHandler(subRepo)
	rec := getStatus(h, auth.WithIdentity(context.Background(), "user-1", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plan":"free","status":"inactive"}`, rec.Body.String())
}

func TestSubscriptionStatusReturnsStoredPlan(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	subRepo.On("FindByUserID", mock.Anything, "user-1").Return(&entity.UserSubscription{
		UserID: "user-1",
		Plan:   entity.PlanPro,
		Status: entity.SubscriptionTrialing,
	}, nil)

	h := NewSubscriptionHandler(subRepo)
	rec := getStatus(h, auth.WithIdentity(context.Background(), "user-1", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plan":"pro","status":"trialing"}`, rec.Body.String())
}
