package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hireloop/hireloop-api/internal/auth"
	"github.com/hireloop/hireloop-api/internal/infra/http/middleware"
	"github.com/hireloop/hireloop-api/internal/usecase"
)

type CheckoutHandler struct {
	StartCheckoutUC *usecase.StartCheckoutUseCase
}

func NewCheckoutHandler(uc *usecase.StartCheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{StartCheckoutUC: uc}
}

type checkoutRequest struct {
	PriceType string `json:"priceType"`
	ReturnURL string `json:"returnUrl"`
}

func (h *CheckoutHandler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Missing Authorization header")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.StartCheckoutUC.Execute(r.Context(), usecase.StartCheckoutInput{
		UserID:    userID,
		Email:     auth.Email(r.Context()),
		PriceType: req.PriceType,
		ReturnURL: req.ReturnURL,
	})
	if err != nil {
		middleware.RecordCheckout(req.PriceType, "error")
		var upstreamErr *usecase.UpstreamError
		if errors.As(err, &upstreamErr) {
			middleware.RecordIntegrationError("stripe")
		}
		respondUseCaseError(w, err)
		return
	}

	middleware.RecordCheckout(req.PriceType, "ok")
	respondJSON(w, http.StatusOK, output)
}
