package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/queue"
)

// inboundAddressPrefix tags the per-user forwarding address:
// u-<userID>@<inbound domain>.
const inboundAddressPrefix = "u-"

type IngestEmailInput struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
}

// IngestEmailUseCase classifies one forwarded message and records it.
//
// Classification rules:
//   - sender matches one of the recipient user's contacts and the subject
//     reads like call scheduling -> needs_confirmation, and the sender is
//     asked by email to confirm the booking;
//   - sender matches a contact -> processed, contact linked;
//   - no match -> ignored.
//
// Rows are written exactly once here; the display path never mutates them.
type IngestEmailUseCase struct {
	ContactRepo ContactRepositoryInterface
	EmailRepo   InboundEmailRepositoryInterface
	Mailer      EmailService
	Publisher   MutationPublisherInterface
}

func NewIngestEmailUseCase(
	contactRepo ContactRepositoryInterface,
	emailRepo InboundEmailRepositoryInterface,
	mailer EmailService,
	publisher MutationPublisherInterface,
) *IngestEmailUseCase {
	return &IngestEmailUseCase{
		ContactRepo: contactRepo,
		EmailRepo:   emailRepo,
		Mailer:      mailer,
		Publisher:   publisher,
	}
}

func (uc *IngestEmailUseCase) Execute(ctx context.Context, input IngestEmailInput) (*entity.InboundEmail, error) {
	sender, err := parseAddress(input.From)
	if err != nil {
		return nil, &ValidationError{Field: "from", Message: "is not a valid address"}
	}

	recipient, err := parseAddress(input.To)
	if err != nil {
		return nil, &ValidationError{Field: "to", Message: "is not a valid address"}
	}

	userID, ok := recipientUserID(recipient)
	if !ok {
		// Without a resolvable owner there is no row to write the failure to.
		return nil, &ValidationError{Field: "to", Message: "does not map to a known inbound address"}
	}

	record := entity.NewInboundEmail(userID, sender, recipient, input.Subject)
	uc.classify(ctx, record, userID, sender, input.Subject)

	if err := uc.EmailRepo.Create(ctx, record); err != nil {
		return nil, &AccessError{Message: "inbound email insert failed: " + err.Error()}
	}

	uc.publish(ctx, record)
	return record, nil
}

func (uc *IngestEmailUseCase) classify(ctx context.Context, record *entity.InboundEmail, userID, sender, subject string) {
	contact, err := uc.ContactRepo.FindByUserAndEmail(ctx, userID, sender)
	if err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			record.Status = entity.InboundIgnored
			return
		}
		record.Status = entity.InboundFailed
		record.ErrorMessage = "contact lookup failed: " + err.Error()
		return
	}

	record.ContactID = contact.ID
	intent := schedulingIntent(subject)

	parsed, _ := json.Marshal(map[string]any{
		"matched_contact_id": contact.ID,
		"matched_name":       contact.Name,
		"scheduling_intent":  intent,
	})
	record.ParsedResult = parsed

	if intent {
		record.Status = entity.InboundNeedsConfirmation
		if uc.Mailer != nil {
			if err := uc.Mailer.SendConfirmationRequest(sender, contact.Name, subject); err != nil {
				log.Printf("confirmation request to %s not sent: %v", sender, err)
			}
		}
		return
	}

	record.Status = entity.InboundProcessed
}

func (uc *IngestEmailUseCase) publish(ctx context.Context, record *entity.InboundEmail) {
	if uc.Publisher == nil {
		return
	}
	err := uc.Publisher.PublishMutation(ctx, queue.MutationEvent{
		Kind:       queue.MutationEmailIngested,
		UserID:     record.UserID,
		ContactID:  record.ContactID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("email ingested but invalidation event not published: %v", err)
	}
}

func parseAddress(raw string) (string, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", err
	}
	return strings.ToLower(addr.Address), nil
}

// recipientUserID extracts the owner from a u-<userID>@... inbound address.
func recipientUserID(address string) (string, bool) {
	local, _, found := strings.Cut(address, "@")
	if !found || !strings.HasPrefix(local, inboundAddressPrefix) {
		return "", false
	}
	userID := strings.TrimPrefix(local, inboundAddressPrefix)
	return userID, userID != ""
}

var schedulingKeywords = []string{"call", "interview", "meeting", "schedule", "calendar"}

func schedulingIntent(subject string) bool {
	lowered := strings.ToLower(subject)
	for _, kw := range schedulingKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
