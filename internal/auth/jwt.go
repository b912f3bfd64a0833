package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager verifies the bearer tokens the hosted auth service issues.
// HS256 with a shared secret; anything else is rejected outright.
type Manager struct {
	secret []byte
	issuer string
}

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

func NewManager(secret, issuer string) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return &Manager{secret: []byte(secret), issuer: issuer}, nil
}

// Verify resolves a raw token to the user identity carried in its subject.
func (m *Manager) Verify(tokenString string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second), // clock skew tolerance
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}

	if m.issuer != "" {
		iss, err := claims.GetIssuer()
		if err != nil || iss != m.issuer {
			return Claims{}, errors.New("issuer mismatch")
		}
	}
	if claims.Subject == "" {
		return Claims{}, errors.New("subject missing")
	}

	return claims, nil
}

// Issue exists for tests and local tooling; production tokens come from the
// auth service.
func (m *Manager) Issue(now time.Time, userID, email string, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}
