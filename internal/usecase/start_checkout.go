package usecase

import (
	"context"
	"errors"

	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/integration/stripe"
)

const (
	PriceMonthly = "monthly"
	PriceAnnual  = "annual"

	// Every new checkout starts with the same trial window.
	TrialDays = 7
)

type StartCheckoutInput struct {
	UserID    string
	Email     string
	PriceType string
	ReturnURL string
}

type StartCheckoutOutput struct {
	URL string `json:"url"`
}

// StartCheckoutUseCase provisions a billing customer for the user (once)
// and opens a hosted checkout session.
//
// Customer linkage is persisted through an upsert keyed by user_id, so
// concurrent duplicate requests converge on one subscription row. The
// provider-side customer creation itself is not idempotent: two
// near-simultaneous first-time checkouts can still create two Stripe
// customers before the upsert resolves. Accepted race; the stored id wins.
type StartCheckoutUseCase struct {
	SubRepo SubscriptionRepositoryInterface
	Gateway BillingGateway

	// Stripe price ids per tier.
	MonthlyPriceID string
	AnnualPriceID  string
}

func NewStartCheckoutUseCase(
	subRepo SubscriptionRepositoryInterface,
	gateway BillingGateway,
	monthlyPriceID, annualPriceID string,
) *StartCheckoutUseCase {
	return &StartCheckoutUseCase{
		SubRepo:        subRepo,
		Gateway:        gateway,
		MonthlyPriceID: monthlyPriceID,
		AnnualPriceID:  annualPriceID,
	}
}

func (uc *StartCheckoutUseCase) Execute(ctx context.Context, input StartCheckoutInput) (*StartCheckoutOutput, error) {
	if input.UserID == "" {
		return nil, &AuthError{Message: "Missing Authorization header"}
	}
	if input.PriceType != PriceMonthly && input.PriceType != PriceAnnual {
		return nil, &ValidationError{Message: "Invalid priceType. Must be monthly or annual"}
	}
	if input.ReturnURL == "" {
		return nil, &ValidationError{Message: "Missing returnUrl"}
	}

	customerID, err := uc.ensureCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	priceID := uc.MonthlyPriceID
	if input.PriceType == PriceAnnual {
		priceID = uc.AnnualPriceID
	}

	url, err := uc.Gateway.CreateCheckoutSession(ctx, stripe.CheckoutSessionInput{
		CustomerID: customerID,
		PriceID:    priceID,
		TrialDays:  TrialDays,
		SuccessURL: input.ReturnURL + "?checkout=success",
		CancelURL:  input.ReturnURL + "?checkout=canceled",
	})
	if err != nil {
		return nil, &UpstreamError{Message: "checkout session creation failed: " + err.Error()}
	}

	return &StartCheckoutOutput{URL: url}, nil
}

// ensureCustomer is the NoCustomer -> HasCustomer transition: reuse the
// stored billing customer when one exists, otherwise create it and persist
// the linkage.
func (uc *StartCheckoutUseCase) ensureCustomer(ctx context.Context, input StartCheckoutInput) (string, error) {
	sub, err := uc.SubRepo.FindByUserID(ctx, input.UserID)
	if err != nil && !errors.Is(err, entity.ErrSubscriptionNotFound) {
		return "", &AccessError{Message: "subscription lookup failed: " + err.Error()}
	}

	if sub != nil && sub.StripeCustomerID != "" {
		return sub.StripeCustomerID, nil
	}

	customerID, err := uc.Gateway.CreateCustomer(ctx, stripe.CreateCustomerInput{
		Email:             input.Email,
		ExternalReference: input.UserID,
	})
	if err != nil {
		return "", &UpstreamError{Message: "customer creation failed: " + err.Error()}
	}

	if err := uc.SubRepo.Upsert(ctx, entity.NewUserSubscription(input.UserID, customerID)); err != nil {
		return "", &AccessError{Message: "subscription upsert failed: " + err.Error()}
	}

	return customerID, nil
}
