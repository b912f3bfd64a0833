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
	"github.com/hireloop/hireloop-api/internal/usecase"
)

type CallHandler struct {
	CallRepo   usecase.CallEventRepositoryInterface
	ScheduleUC *usecase.ScheduleCallUseCase
	Cache      *cache.ViewCache // optional
}

func NewCallHandler(
	callRepo usecase.CallEventRepositoryInterface,
	scheduleUC *usecase.ScheduleCallUseCase,
	viewCache *cache.ViewCache,
) *CallHandler {
	return &CallHandler{
		CallRepo:   callRepo,
		ScheduleUC: scheduleUC,
		Cache:      viewCache,
	}
}

// HandleUpcoming serves the calendar view: every still-scheduled call of
// the user, soonest first.
func (h *CallHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	if h.Cache != nil {
		var cached []*entity.CallEvent
		if hit, err := h.Cache.GetJSON(r.Context(), cache.UpcomingCallsKey(userID), &cached); err == nil && hit {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	events, err := h.CallRepo.ListUpcomingByUser(r.Context(), userID)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	if h.Cache != nil {
		if err := h.Cache.SetJSON(r.Context(), cache.UpcomingCallsKey(userID), events); err != nil {
			log.Printf("upcoming calls cache write failed: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, events)
}

type scheduleCallRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// HandleSchedule books a call and moves the contact into call_scheduled.
func (h *CallHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	contactID := chi.URLParam(r, "contactId")

	var req scheduleCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	event, err := h.ScheduleUC.Execute(r.Context(), usecase.ScheduleCallInput{
		UserID:      userID,
		ContactID:   contactID,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, event)
}
