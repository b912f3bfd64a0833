package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hireloop/hireloop-api/internal/entity"
)

type SubscriptionRepository struct {
	DB *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserSubscription, error) {
	query := `
		SELECT id, user_id, COALESCE(stripe_customer_id, ''), plan, status, created_at, updated_at
		FROM user_subscriptions
		WHERE user_id = $1
	`

	sub := &entity.UserSubscription{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.StripeCustomerID,
		&sub.Plan,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("subscription lookup failed: %w", err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*entity.UserSubscription, error) {
	query := `
		SELECT id, user_id, COALESCE(stripe_customer_id, ''), plan, status, created_at, updated_at
		FROM user_subscriptions
		WHERE stripe_customer_id = $1
	`

	sub := &entity.UserSubscription{}
	err := r.DB.QueryRowContext(ctx, query, customerID).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.StripeCustomerID,
		&sub.Plan,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("subscription lookup failed: %w", err)
	}
	return sub, nil
}

// Upsert converges concurrent first-time writes onto a single row: the
// unique user_id constraint resolves the race, and an already-stored
// customer id is never overwritten by a later empty one. Plan and status
// are only seeded on insert, so a paid row keeps its plan.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *entity.UserSubscription) error {
	query := `
		INSERT INTO user_subscriptions (id, user_id, stripe_customer_id, plan, status, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			stripe_customer_id = COALESCE(user_subscriptions.stripe_customer_id, EXCLUDED.stripe_customer_id),
			updated_at = NOW()
		RETURNING id, COALESCE(stripe_customer_id, ''), plan, status, created_at, updated_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		sub.ID,
		sub.UserID,
		sub.StripeCustomerID,
		sub.Plan,
		sub.Status,
	).Scan(
		&sub.ID,
		&sub.StripeCustomerID,
		&sub.Plan,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("subscription upsert failed: %w", err)
	}
	return nil
}

// UpdatePlan is the billing-webhook write path: flips the plan/status once
// the provider reports the subscription as live.
func (r *SubscriptionRepository) UpdatePlan(ctx context.Context, userID, plan, status string) error {
	query := `UPDATE user_subscriptions SET plan = $2, status = $3, updated_at = NOW() WHERE user_id = $1`

	res, err := r.DB.ExecContext(ctx, query, userID, plan, status)
	if err != nil {
		return fmt.Errorf("subscription plan update failed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrSubscriptionNotFound
	}
	return nil
}
