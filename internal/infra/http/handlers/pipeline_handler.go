package handlers

import (
	"log"
	"net/http"

	"github.com/hireloop/hireloop-api/internal/auth"
	"github.com/hireloop/hireloop-api/internal/infra/cache"
	"github.com/hireloop/hireloop-api/internal/usecase"
)

// PipelineHandler serves the Kanban board projection.
type PipelineHandler struct {
	ContactRepo usecase.ContactRepositoryInterface
	Cache       *cache.ViewCache // optional
}

func NewPipelineHandler(contactRepo usecase.ContactRepositoryInterface, viewCache *cache.ViewCache) *PipelineHandler {
	return &PipelineHandler{ContactRepo: contactRepo, Cache: viewCache}
}

func (h *PipelineHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if h.Cache != nil {
		var cached []usecase.PipelineColumn
		if hit, err := h.Cache.GetJSON(r.Context(), cache.BoardKey(userID), &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	contacts, err := h.ContactRepo.ListByUser(r.Context(), userID)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	board := usecase.GroupByStage(contacts)

	if h.Cache != nil {
		if err := h.Cache.SetJSON(r.Context(), cache.BoardKey(userID), board); err != nil {
			log.Printf("board view cache write failed: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, board)
}
