package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hireloop/hireloop-api/internal/auth"
	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/cache"
	"github.com/hireloop/hireloop-api/internal/infra/http/middleware"
	"github.com/hireloop/hireloop-api/internal/infra/queue"
	"github.com/hireloop/hireloop-api/internal/usecase"
)

type ContactHandler struct {
	ContactRepo usecase.ContactRepositoryInterface
	MoveUC      *usecase.MoveContactUseCase
	Producer    queue.MutationPublisher
	Cache       *cache.ViewCache // optional
}

func NewContactHandler(
	contactRepo usecase.ContactRepositoryInterface,
	moveUC *usecase.MoveContactUseCase,
	producer queue.MutationPublisher,
	viewCache *cache.ViewCache,
) *ContactHandler {
	return &ContactHandler{
		ContactRepo: contactRepo,
		MoveUC:      moveUC,
		Producer:    producer,
		Cache:       viewCache,
	}
}

func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if h.Cache != nil {
		var cached []*entity.Contact
		if hit, err := h.Cache.GetJSON(r.Context(), cache.ContactsKey(userID), &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	contacts, err := h.ContactRepo.ListByUser(r.Context(), userID)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	if h.Cache != nil {
		if err := h.Cache.SetJSON(r.Context(), cache.ContactsKey(userID), contacts); err != nil {
			log.Printf("contact view cache write failed: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, contacts)
}

type createContactRequest struct {
	Name           string     `json:"name"`
	Company        string     `json:"company"`
	Email          string     `json:"email"`
	Notes          string     `json:"notes"`
	NextFollowupAt *time.Time `json:"next_followup_at"`
}

func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	contact, err := entity.NewContact(userID, req.Name, req.Company, req.Email, req.Notes, req.NextFollowupAt)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ContactRepo.Create(r.Context(), contact); err != nil {
		respondUseCaseError(w, err)
		return
	}

	h.publish(r, queue.MutationContactCreated, contact.UserID, contact.ID)
	respondJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	contactID := chi.URLParam(r, "contactId")

	var fields entity.ContactPatch
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if fields.Stage != nil && !fields.Stage.Valid() {
		respondError(w, http.StatusBadRequest, "stage is invalid")
		return
	}

	contact, err := h.ContactRepo.Patch(r.Context(), userID, contactID, fields)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	h.publish(r, queue.MutationContactUpdated, contact.UserID, contact.ID)
	respondJSON(w, http.StatusOK, contact)
}

// HandleDelete always answers 204: a row that never existed and a row that
// was just removed are indistinguishable here.
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	contactID := chi.URLParam(r, "contactId")

	if err := h.ContactRepo.Delete(r.Context(), userID, contactID); err != nil {
		respondUseCaseError(w, err)
		return
	}

	h.publish(r, queue.MutationContactDeleted, userID, contactID)
	w.WriteHeader(http.StatusNoContent)
}

type moveContactRequest struct {
	FromStage   entity.Stage `json:"from_stage"`
	TargetStage entity.Stage `json:"target_stage"`
}

func (h *ContactHandler) HandleMoveStage(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	contactID := chi.URLParam(r, "contactId")

	var req moveContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	contact, err := h.MoveUC.Execute(r.Context(), usecase.MoveContactInput{
		UserID:      userID,
		ContactID:   contactID,
		FromStage:   req.FromStage,
		TargetStage: req.TargetStage,
	})
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	middleware.RecordStageTransition(string(req.TargetStage))
	respondJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) publish(r *http.Request, kind queue.MutationKind, userID, contactID string) {
	if h.Producer == nil {
		return
	}
	err := h.Producer.PublishMutation(r.Context(), queue.MutationEvent{
		Kind:       kind,
		UserID:     userID,
		ContactID:  contactID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("mutation applied but event not published: %v", err)
	}
}
