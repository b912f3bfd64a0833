package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"

	"github.com/hireloop/hireloop-api/internal/auth"
	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/cache"
	"github.com/hireloop/hireloop-api/internal/infra/http/middleware"
	"github.com/hireloop/hireloop-api/internal/usecase"
)

// recentEmailLimit caps the inbox view.
const recentEmailLimit = 20

type InboundEmailHandler struct {
	EmailRepo usecase.InboundEmailRepositoryInterface
	IngestUC  *usecase.IngestEmailUseCase

	// IngestToken authenticates the email provider's webhook; ingestion
	// carries no user bearer token.
	IngestToken string

	Cache *cache.ViewCache // optional
}

func NewInboundEmailHandler(
	emailRepo usecase.InboundEmailRepositoryInterface,
	ingestUC *usecase.IngestEmailUseCase,
	ingestToken string,
	viewCache *cache.ViewCache,
) *InboundEmailHandler {
	return &InboundEmailHandler{
		EmailRepo:   emailRepo,
		IngestUC:    ingestUC,
		IngestToken: ingestToken,
		Cache:       viewCache,
	}
}

func (h *InboundEmailHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if h.Cache != nil {
		var cached []*entity.InboundEmail
		if hit, err := h.Cache.GetJSON(r.Context(), cache.InboundEmailsKey(userID), &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	emails, err := h.EmailRepo.ListRecentByUser(r.Context(), userID, recentEmailLimit)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	if h.Cache != nil {
		if err := h.Cache.SetJSON(r.Context(), cache.InboundEmailsKey(userID), emails); err != nil {
			log.Printf("inbound email cache write failed: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, emails)
}

func (h *InboundEmailHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Inbound-Token")
	if h.IngestToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.IngestToken)) != 1 {
		respondError(w, http.StatusUnauthorized, "Invalid ingest token")
		return
	}

	var input usecase.IngestEmailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	record, err := h.IngestUC.Execute(r.Context(), input)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	middleware.RecordEmailIngested(string(record.Status))
	respondJSON(w, http.StatusCreated, record)
}
