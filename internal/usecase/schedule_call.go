package usecase

import (
	"context"
	"log"
	"time"

	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/queue"
)

type ScheduleCallInput struct {
	UserID      string
	ContactID   string
	ScheduledAt time.Time
}

// ScheduleCallUseCase books a call and moves the contact into
// call_scheduled. The event insert and the stage patch run inside a
// compensating Transaction: a failed patch removes the event again instead
// of stranding a scheduled call on a contact in another stage.
type ScheduleCallUseCase struct {
	ContactRepo ContactRepositoryInterface
	CallRepo    CallEventRepositoryInterface
	Publisher   MutationPublisherInterface
}

func NewScheduleCallUseCase(
	contactRepo ContactRepositoryInterface,
	callRepo CallEventRepositoryInterface,
	publisher MutationPublisherInterface,
) *ScheduleCallUseCase {
	return &ScheduleCallUseCase{
		ContactRepo: contactRepo,
		CallRepo:    callRepo,
		Publisher:   publisher,
	}
}

func (uc *ScheduleCallUseCase) Execute(ctx context.Context, input ScheduleCallInput) (*entity.CallEvent, error) {
	if input.ScheduledAt.IsZero() {
		return nil, &ValidationError{Field: "scheduled_at", Message: "is required"}
	}

	// Ownership gate: someone else's contact reads as not found.
	contact, err := uc.ContactRepo.FindByID(ctx, input.UserID, input.ContactID)
	if err != nil {
		return nil, err
	}

	event := entity.NewCallEvent(contact.ID, input.ScheduledAt)

	txn := NewTransaction()

	txn.AddOperation("create_call_event", func(ctx context.Context) error {
		return uc.CallRepo.Create(ctx, event)
	})
	txn.AddCompensation("remove_call_event", func(ctx context.Context) error {
		return uc.CallRepo.DeleteByID(ctx, event.ID)
	})

	txn.AddOperation("apply_stage", func(ctx context.Context) error {
		stage := entity.StageCallScheduled
		_, err := uc.ContactRepo.Patch(ctx, input.UserID, input.ContactID, entity.ContactPatch{Stage: &stage})
		return err
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, err
	}

	uc.publish(ctx, input.UserID, input.ContactID)
	return event, nil
}

func (uc *ScheduleCallUseCase) publish(ctx context.Context, userID, contactID string) {
	if uc.Publisher == nil {
		return
	}
	err := uc.Publisher.PublishMutation(ctx, queue.MutationEvent{
		Kind:       queue.MutationContactUpdated,
		UserID:     userID,
		ContactID:  contactID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("call scheduled but invalidation event not published: %v", err)
	}
}
