package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type InboundEmailStatus string

const (
	InboundProcessed         InboundEmailStatus = "processed"
	InboundNeedsConfirmation InboundEmailStatus = "needs_confirmation"
	InboundFailed            InboundEmailStatus = "failed"
	InboundIgnored           InboundEmailStatus = "ignored"
)

// InboundEmail is one ingested message. The API only ever writes it once,
// at ingestion time; everything after that is read-only display data.
type InboundEmail struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	FromAddress  string             `json:"from_address"`
	ToAddress    string             `json:"to_address"`
	Subject      string             `json:"subject"`
	Status       InboundEmailStatus `json:"status"`
	ContactID    string             `json:"contact_id,omitempty"`
	CallEventID  string             `json:"call_event_id,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
	ParsedResult json.RawMessage    `json:"parsed_result,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

func NewInboundEmail(userID, from, to, subject string) *InboundEmail {
	return &InboundEmail{
		ID:          uuid.New().String(),
		UserID:      userID,
		FromAddress: from,
		ToAddress:   to,
		Subject:     subject,
		Status:      InboundIgnored,
		CreatedAt:   time.Now(),
	}
}
