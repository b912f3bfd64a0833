package entity

import (
	"time"

	"github.com/google/uuid"
)

type CallStatus string

const (
	CallScheduled CallStatus = "scheduled"
	CallCompleted CallStatus = "completed"
	CallCanceled  CallStatus = "canceled"
)

// CallEvent is a call booked against a contact. The UI assumes at most one
// active scheduled call per contact; the store does not enforce it.
type CallEvent struct {
	ID          string     `json:"id"`
	ContactID   string     `json:"contact_id"`
	Status      CallStatus `json:"status"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewCallEvent(contactID string, scheduledAt time.Time) *CallEvent {
	now := time.Now()
	return &CallEvent{
		ID:          uuid.New().String(),
		ContactID:   contactID,
		Status:      CallScheduled,
		ScheduledAt: scheduledAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
