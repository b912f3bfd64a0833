package handlers

import (
	"errors"
	"net/http"

	"github.com/hireloop/hireloop-api/internal/auth"
	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/usecase"
)

type SubscriptionHandler struct {
	SubRepo usecase.SubscriptionRepositoryInterface
}

func NewSubscriptionHandler(repo usecase.SubscriptionRepositoryInterface) *SubscriptionHandler {
	return &SubscriptionHandler{SubRepo: repo}
}

type subscriptionStatusResponse struct {
	Plan   string `json:"plan"`
	Status string `json:"status"`
}

// HandleGetStatus answers the plan gate for the UI. A user without a
// subscription row is simply on the free plan.
func (h *SubscriptionHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	sub, err := h.SubRepo.FindByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrSubscriptionNotFound) {
			respondJSON(w, http.StatusOK, subscriptionStatusResponse{
				Plan:   entity.PlanFree,
				Status: entity.SubscriptionInactive,
			})
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, subscriptionStatusResponse{Plan: sub.Plan, Status: sub.Status})
}
