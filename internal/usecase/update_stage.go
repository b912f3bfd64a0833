package usecase

import (
	"context"
	"log"
	"time"

	"github.com/hireloop/hireloop-api/internal/entity"
	"github.com/hireloop/hireloop-api/internal/infra/queue"
)

type UpdateContactStageInput struct {
	UserID              string
	ContactID           string
	TargetStage         entity.Stage
	DeleteScheduledCall bool
}

// UpdateContactStageUseCase applies a stage change together with the
// call-event side effects that the stage semantics demand:
//
//  1. moving into call_done completes every scheduled call of the contact;
//  2. the DeleteScheduledCall flag removes every scheduled call;
//  3. the stage itself is patched onto the contact row.
//
// The three writes run inside a compensating Transaction so a failure in a
// later step undoes the earlier call-event mutations instead of leaving
// them orphaned.
type UpdateContactStageUseCase struct {
	ContactRepo ContactRepositoryInterface
	CallRepo    CallEventRepositoryInterface
	Publisher   MutationPublisherInterface
}

func NewUpdateContactStageUseCase(
	contactRepo ContactRepositoryInterface,
	callRepo CallEventRepositoryInterface,
	publisher MutationPublisherInterface,
) *UpdateContactStageUseCase {
	return &UpdateContactStageUseCase{
		ContactRepo: contactRepo,
		CallRepo:    callRepo,
		Publisher:   publisher,
	}
}

func (uc *UpdateContactStageUseCase) Execute(ctx context.Context, input UpdateContactStageInput) (*entity.Contact, error) {
	if !input.TargetStage.Valid() {
		return nil, &ValidationError{Field: "stage", Message: "must be one of the pipeline stages"}
	}

	txn := NewTransaction()

	if input.TargetStage == entity.StageCallDone {
		var completed []string

		txn.AddOperation("complete_scheduled_calls", func(ctx context.Context) error {
			ids, err := uc.CallRepo.CompleteScheduled(ctx, input.UserID, input.ContactID)
			completed = ids
			return err
		})
		txn.AddCompensation("reopen_completed_calls", func(ctx context.Context) error {
			return uc.CallRepo.ReopenCompleted(ctx, completed)
		})
	}

	if input.DeleteScheduledCall {
		var removed []*entity.CallEvent

		txn.AddOperation("delete_scheduled_calls", func(ctx context.Context) error {
			events, err := uc.CallRepo.ListScheduled(ctx, input.UserID, input.ContactID)
			if err != nil {
				return err
			}
			removed = events
			return uc.CallRepo.DeleteScheduled(ctx, input.UserID, input.ContactID)
		})
		txn.AddCompensation("restore_scheduled_calls", func(ctx context.Context) error {
			for _, ev := range removed {
				if err := uc.CallRepo.Create(ctx, ev); err != nil {
					return err
				}
			}
			return nil
		})
	}

	var contact *entity.Contact

	txn.AddOperation("apply_stage", func(ctx context.Context) error {
		stage := input.TargetStage
		c, err := uc.ContactRepo.Patch(ctx, input.UserID, input.ContactID, entity.ContactPatch{Stage: &stage})
		contact = c
		return err
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, err
	}

	uc.publish(ctx, contact)
	return contact, nil
}

// publish notifies view-state holders that cached views keyed by the owner
// and the contact are stale. A lost event only delays invalidation until
// the cache TTL, so failure is logged and swallowed.
func (uc *UpdateContactStageUseCase) publish(ctx context.Context, contact *entity.Contact) {
	if uc.Publisher == nil || contact == nil {
		return
	}
	err := uc.Publisher.PublishMutation(ctx, queue.MutationEvent{
		Kind:       queue.MutationStageChanged,
		UserID:     contact.UserID,
		ContactID:  contact.ID,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("stage updated but invalidation event not published: %v", err)
	}
}
