package usecase

import (
	"context"

	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/integration/stripe"
	"github.com/hireloop/hireloop-api/internal/infra/queue"
)

// Contact reads and writes are scoped by the owning user: a contact id
// from another user's data reads as not found, never as someone else's row.
type ContactRepositoryInterface interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.Contact, error)
	FindByID(ctx context.Context, userID, id string) (*entity.Contact, error)
	FindByUserAndEmail(ctx context.Context, userID, email string) (*entity.Contact, error)
	Create(ctx context.Context, c *entity.Contact) error
	Patch(ctx context.Context, userID, id string, fields entity.ContactPatch) (*entity.Contact, error)
	Delete(ctx context.Context, userID, id string) error
}

type CallEventRepositoryInterface interface {
	Create(ctx context.Context, ev *entity.CallEvent) error
	DeleteByID(ctx context.Context, id string) error
	ListScheduled(ctx context.Context, userID, contactID string) ([]*entity.CallEvent, error)
	ListUpcomingByUser(ctx context.Context, userID string) ([]*entity.CallEvent, error)
	// CompleteScheduled flips every scheduled event of the contact to
	// completed and returns the affected ids so the caller can compensate.
	CompleteScheduled(ctx context.Context, userID, contactID string) ([]string, error)
	ReopenCompleted(ctx context.Context, ids []string) error
	DeleteScheduled(ctx context.Context, userID, contactID string) error
}

type SubscriptionRepositoryInterface interface {
	FindByUserID(ctx context.Context, userID string) (*entity.UserSubscription, error)
	Upsert(ctx context.Context, sub *entity.UserSubscription) error
}

type InboundEmailRepositoryInterface interface {
	Create(ctx context.Context, m *entity.InboundEmail) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.InboundEmail, error)
}

type BillingGateway interface {
	CreateCustomer(ctx context.Context, input stripe.CreateCustomerInput) (string, error)
	CreateCheckoutSession(ctx context.Context, input stripe.CheckoutSessionInput) (string, error)
}

type MutationPublisherInterface interface {
	PublishMutation(ctx context.Context, payload queue.MutationEvent) error
}

type EmailService interface {
	SendConfirmationRequest(to, contactName, subject string) error
}
