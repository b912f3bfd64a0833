package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Stage is the fixed position of a contact inside the recruiting pipeline.
// The set is static; board columns are derived from it, never from data.
type Stage string

const (
	StageProspecting   Stage = "prospecting"
	StageContacted     Stage = "contacted"
	StageCallScheduled Stage = "call_scheduled"
	StageCallDone      Stage = "call_done"
	StageOffer         Stage = "offer"
)

// StageOrder is the display order of board columns.
var StageOrder = []Stage{
	StageProspecting,
	StageContacted,
	StageCallScheduled,
	StageCallDone,
	StageOffer,
}

func (s Stage) Valid() bool {
	for _, st := range StageOrder {
		if st == s {
			return true
		}
	}
	return false
}

var ErrContactNotFound = errors.New("contact not found")

// DefaultFollowupDelay is applied when a contact is created without an
// explicit follow-up time.
const DefaultFollowupDelay = 7 * 24 * time.Hour

type Contact struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Company        string    `json:"company"`
	Email          string    `json:"email"`
	Notes          string    `json:"notes"`
	Stage          Stage     `json:"stage"`
	NextFollowupAt time.Time `json:"next_followup_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Factory
func NewContact(userID, name, company, email, notes string, nextFollowup *time.Time) (*Contact, error) {
	now := time.Now()

	followup := now.Add(DefaultFollowupDelay)
	if nextFollowup != nil && !nextFollowup.IsZero() {
		followup = *nextFollowup
	}

	contact := &Contact{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           name,
		Company:        company,
		Email:          email,
		Notes:          notes,
		Stage:          StageProspecting,
		NextFollowupAt: followup,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

// ContactPatch carries a partial update; nil fields are left untouched.
type ContactPatch struct {
	Name           *string    `json:"name,omitempty"`
	Company        *string    `json:"company,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	Stage          *Stage     `json:"stage,omitempty"`
	NextFollowupAt *time.Time `json:"next_followup_at,omitempty"`
}

func (c *Contact) Validate() error {
	if c.UserID == "" {
		return errors.New("user_id is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	if !c.Stage.Valid() {
		return errors.New("stage is invalid")
	}
	return nil
}
