package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/integration/stripe"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByID(ctx context.Context, userID, id string) (*entity.Contact, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByUserAndEmail(ctx context.Context, userID, email string) (*entity.Contact, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) Patch(ctx context.Context, userID, id string, fields entity.ContactPatch) (*entity.Contact, error) {
	args := m.Called(ctx, userID, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *MockContactRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockCallEventRepository struct {
	mock.Mock
}

func (m *MockCallEventRepository) Create(ctx context.Context, ev *entity.CallEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockCallEventRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCallEventRepository) ListScheduled(ctx context.Context, userID, contactID string) ([]*entity.CallEvent, error) {
	args := m.Called(ctx, userID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CallEvent), args.Error(1)
}

func (m *MockCallEventRepository) ListUpcomingByUser(ctx context.Context, userID string) ([]*entity.CallEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CallEvent), args.Error(1)
}

func (m *MockCallEventRepository) CompleteScheduled(ctx context.Context, userID, contactID string) ([]string, error) {
	args := m.Called(ctx, userID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCallEventRepository) ReopenCompleted(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockCallEventRepository) DeleteScheduled(ctx context.Context, userID, contactID string) error {
	args := m.Called(ctx, userID, contactID)
	return args.Error(0)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, sub *entity.UserSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*entity.UserSubscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdatePlan(ctx context.Context, userID, plan, status string) error {
	args := m.Called(ctx, userID, plan, status)
	return args.Error(0)
}

type MockInboundEmailRepository struct {
	mock.Mock
}

func (m *MockInboundEmailRepository) Create(ctx context.Context, rec *entity.InboundEmail) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockInboundEmailRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*entity.InboundEmail, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.InboundEmail), args.Error(1)
}

type MockBillingGateway struct {
	mock.Mock
}

func (m *MockBillingGateway) CreateCustomer(ctx context.Context, input stripe.CreateCustomerInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockBillingGateway) CreateCheckoutSession(ctx context.Context, input stripe.CheckoutSessionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
