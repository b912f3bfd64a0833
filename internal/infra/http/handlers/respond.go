package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/database"
	"github.com/hireloop/hireloop-api/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondUseCaseError maps the failure taxonomy onto HTTP statuses.
func respondUseCaseError(w http.ResponseWriter, err error) {
	var authErr *usecase.AuthError
	var validationErr *usecase.ValidationError
	var notFoundErr *usecase.NotFoundError
	var accessErr *usecase.AccessError
	var upstreamErr *usecase.UpstreamError

	switch {
	case errors.As(err, &authErr):
		respondError(w, http.StatusUnauthorized, authErr.Message)
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		respondError(w, http.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &accessErr):
		respondError(w, http.StatusForbidden, accessErr.Message)
	case errors.As(err, &upstreamErr):
		respondError(w, http.StatusBadGateway, upstreamErr.Message)
	case errors.Is(err, entity.ErrContactNotFound):
		respondError(w, http.StatusNotFound, "Contact not found")
	case errors.Is(err, entity.ErrSubscriptionNotFound):
		respondError(w, http.StatusNotFound, "Subscription not found")
	case errors.Is(err, database.ErrConstraintViolation):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
