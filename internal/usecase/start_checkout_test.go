package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/integration/stripe"
)

func newCheckoutUseCase(subRepo *MockSubscriptionRepository, gateway *MockBillingGateway) *StartCheckoutUseCase {
	return NewStartCheckoutUseCase(subRepo, gateway, "price_monthly_123", "price_annual_456")
}

func TestStartCheckoutRejectsMissingUser(t *testing.T) {
	uc := newCheckoutUseCase(new(MockSubscriptionRepository), new(MockBillingGateway))

	_, err := uc.Execute(context.Background(), StartCheckoutInput{
		PriceType: PriceMonthly,
		ReturnURL: "https://app.hireloop.io/settings",
	})

	var authErr *AuthError
	assert.True(t, errors.As(err, &authErr))
	assert.Equal(t, "Missing Authorization header", authErr.Message)
}

func TestStartCheckoutRejectsInvalidPriceType(t *testing.T) {
	gateway := new(MockBillingGateway)
	uc := newCheckoutUseCase(new(MockSubscriptionRepository), gateway)

	_, err := uc.Execute(context.Background(), StartCheckoutInput{
		UserID:    "user-1",
		PriceType: "weekly",
		ReturnURL: "https://app.hireloop.io/settings",
	})

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Invalid priceType. Must be monthly or annual", validationErr.Error())
	gateway.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestStartCheckoutRejectsMissingReturnURL(t *testing.T) {
	uc := newCheckoutUseCase(new(MockSubscriptionRepository), new(MockBillingGateway))

	_, err := uc.Execute(context.Background(), StartCheckoutInput{
		UserID:    "user-1",
		PriceType: PriceAnnual,
	})

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Missing returnUrl", validationErr.Error())
}

func TestStartCheckoutFirstTimeCreatesCustomerAndUpserts(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	gateway := new(MockBillingGateway)

	subRepo.On("FindByUserID", mock.Anything, "user-1").
		Return(nil, entity.ErrSubscriptionNotFound)
	gateway.On("CreateCustomer", mock.Anything, stripe.CreateCustomerInput{
		Email:             "ana@acme.io",
		ExternalReference: "user-1",
	}).Return("cus_abc", nil)
	subRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(sub *entity.UserSubscription) bool {
		return sub.UserID == "user-1" &&
			sub.StripeCustomerID == "cus_abc" &&
			sub.Plan == entity.PlanFree
	})).Return(nil)
	gateway.On("CreateCheckoutSession", mock.Anything, stripe.CheckoutSessionInput{
		CustomerID: "cus_abc",
		PriceID:    "price_monthly_123",
		TrialDays:  TrialDays,
		SuccessURL: "https://app.hireloop.io/settings?checkout=success",
		CancelURL:  "https://app.hireloop.io/settings?checkout=canceled",
	}).Return("https://checkout.stripe.com/c/pay/sess_123", nil)

	uc := newCheckoutUseCase(subRepo, gateway)
	output, err := uc.Execute(context.Background(), StartCheckoutInput{
		UserID:    "user-1",
		Email:     "ana@acme.io",
		PriceType: PriceMonthly,
		ReturnURL: "https://app.hireloop.io/settings",
	})

	assert.Nil(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/sess_123", output.URL)
	subRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestStartCheckoutReusesExistingCustomer(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	gateway := new(MockBillingGateway)

	subRepo.On("FindByUserID", mock.Anything, "user-1").Return(&entity.UserSubscription{
		UserID:           "user-1",
		StripeCustomerID: "cus_existing",
		Plan:             entity.PlanPro,
		Status:           entity.SubscriptionActive,
	}, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(in stripe.CheckoutSessionInput) bool {
		return in.CustomerID == "cus_existing" && in.PriceID == "price_annual_456"
	})).Return("https://checkout.stripe.com/c/pay/sess_456", nil)

	uc := newCheckoutUseCase(subRepo, gateway)
	output, err := uc.Execute(context.Background(), StartCheckoutInput{
		UserID:    "user-1",
		Email:     "ana@acme.io",
		PriceType: PriceAnnual,
		ReturnURL: "https://app.hireloop.io/settings",
	})

	assert.Nil(t, err)
	assert.NotEmpty(t, output.URL)
	gateway.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	subRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestStartCheckoutWrapsGatewayFailure(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	gateway := new(MockBillingGateway)

	subRepo.On("FindByUserID", mock.Anything, "user-1").
		Return(nil, entity.ErrSubscriptionNotFound)
	gateway.On("CreateCustomer", mock.Anything, mock.Anything).
		Return("", errors.New("stripe: api_key_expired"))

	uc := newCheckoutUseCase(subRepo, gateway)
	_, err := uc.Execute(context.Background(), StartCheckoutInput{
		UserID:    "user-1",
		PriceType: PriceMonthly,
		ReturnURL: "https://app.hireloop.io/settings",
	})

	var upstreamErr *UpstreamError
	assert.True(t, errors.As(err, &upstreamErr))
}

func TestStartCheckoutWrapsSessionFailure(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	gateway := new(MockBillingGateway)

	subRepo.On("FindByUserID", mock.Anything, "user-1").Return(&entity.UserSubscription{
		UserID:           "user-1",
		StripeCustomerID: "cus_existing",
	}, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return("", errors.New("stripe: rate_limited"))

	uc := newCheckoutUseCase(subRepo, gateway)
	_, err := uc.Execute(context.Background(), StartCheckoutInput{
		UserID:    "user-1",
		PriceType: PriceMonthly,
		ReturnURL: "https://app.hireloop.io/settings",
	})

	var upstreamErr *UpstreamError
	assert.True(t, errors.As(err, &upstreamErr))
}
