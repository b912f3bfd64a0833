package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hireloop/hireloop-api/internal/auth"
	"github.com/hireloop/hireloop-api/internal/entity"
	appmw "github.com/hireloop/hireloop-api/internal/infra/http/middleware"
	"github.com/hireloop/hireloop-api/internal/usecase"
)

func newCheckoutServer(t *testing.T, subRepo *MockSubscriptionRepository, gateway *MockBillingGateway) (*chi.Mux, string) {
	t.Helper()

	manager, err := auth.NewManager("test-secret", "hireloop")
	assert.Nil(t, err)

	token, err := manager.Issue(time.Now(), "user-1", "ana@hireloop.io", time.Hour)
	assert.Nil(t, err)

	uc := usecase.NewStartCheckoutUseCase(subRepo, gateway, "price_monthly_123", "price_annual_456")
	handler := NewCheckoutHandler(uc)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireUser(manager))
		r.Post("/billing/checkout", handler.Handle)
	})
	return r, token
}

func postCheckout(r http.Handler, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/billing/checkout", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutMissingAuthorizationHeader(t *testing.T) {
	r, _ := newCheckoutServer(t, new(MockSubscriptionRepository), new(MockBillingGateway))

	rec := postCheckout(r, "", `{"priceType":"monthly","returnUrl":"https://app.hireloop.io"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing Authorization header"}`, rec.Body.String())
}

func TestCheckoutInvalidPriceType(t *testing.T) {
	r, token := newCheckoutServer(t, new(MockSubscriptionRepository), new(MockBillingGateway))

	rec := postCheckout(r, token, `{"priceType":"weekly","returnUrl":"https://app.hireloop.io"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid priceType. Must be monthly or annual"}`, rec.Body.String())
}

func TestCheckoutMissingReturnURL(t *testing.T) {
	r, token := newCheckoutServer(t, new(MockSubscriptionRepository), new(MockBillingGateway))

	rec := postCheckout(r, token, `{"priceType":"monthly"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing returnUrl"}`, rec.Body.String())
}

func TestCheckoutInvalidJSON(t *testing.T) {
	r, token := newCheckoutServer(t, new(MockSubscriptionRepository), new(MockBillingGateway))

	rec := postCheckout(r, token, `{"priceType":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON"}`, rec.Body.String())
}

func TestCheckoutReturnsSessionURL(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	gateway := new(MockBillingGateway)

	subRepo.On("FindByUserID", mock.Anything, "user-1").
		Return(nil, entity.ErrSubscriptionNotFound)
	gateway.On("CreateCustomer", mock.Anything, mock.Anything).Return("cus_abc", nil)
	subRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return("https://checkout.stripe.com/c/pay/sess_123", nil)

	r, token := newCheckoutServer(t, subRepo, gateway)
	rec := postCheckout(r, token, `{"priceType":"monthly","returnUrl":"https://app.hireloop.io"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://checkout.stripe.com/c/pay/sess_123"}`, rec.Body.String())
	subRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestCheckoutUpstreamFailureIsBadGateway(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	gateway := new(MockBillingGateway)

	subRepo.On("FindByUserID", mock.Anything, "user-1").Return(&entity.UserSubscription{
		UserID:           "user-1",
		StripeCustomerID: "cus_abc",
	}, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return("", assert.AnError)

	r, token := newCheckoutServer(t, subRepo, gateway)
	rec := postCheckout(r, token, `{"priceType":"monthly","returnUrl":"https://app.hireloop.io"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
