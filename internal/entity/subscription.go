package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

const (
	SubscriptionInactive = "inactive"
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// UserSubscription links a user to a billing customer. One row per user;
// writes go through an upsert keyed by user_id so concurrent first-time
// checkouts converge on a single row.
type UserSubscription struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	StripeCustomerID string    `json:"stripe_customer_id"` // empty until first checkout
	Plan             string    `json:"plan"`               // free, pro
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewUserSubscription(userID, stripeCustomerID string) *UserSubscription {
	now := time.Now()
	return &UserSubscription{
		ID:               uuid.New().String(),
		UserID:           userID,
		StripeCustomerID: stripeCustomerID,
		Plan:             PlanFree,
		Status:           SubscriptionInactive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
