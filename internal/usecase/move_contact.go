package usecase

import (
	"context"

	"github.com/hireloop/hireloop-api/internal/entity"
)

type MoveContactInput struct {
	UserID      string       `json:"user_id"`
	ContactID   string       `json:"contact_id"`
	FromStage   entity.Stage `json:"from_stage"`
	TargetStage entity.Stage `json:"target_stage"`
}

// MoveContactUseCase translates a board drop gesture into a stage update.
// The scheduled-call cleanup flag is derived from the stage semantics:
// leaving call_scheduled for anything other than call_done means the booked
// call is no longer relevant and gets cleared.
type MoveContactUseCase struct {
	ContactRepo ContactRepositoryInterface
	UpdateStage *UpdateContactStageUseCase
}

func NewMoveContactUseCase(contactRepo ContactRepositoryInterface, updateStage *UpdateContactStageUseCase) *MoveContactUseCase {
	return &MoveContactUseCase{
		ContactRepo: contactRepo,
		UpdateStage: updateStage,
	}
}

func (uc *MoveContactUseCase) Execute(ctx context.Context, input MoveContactInput) (*entity.Contact, error) {
	if !input.FromStage.Valid() {
		return nil, &ValidationError{Field: "from_stage", Message: "must be one of the pipeline stages"}
	}
	if !input.TargetStage.Valid() {
		return nil, &ValidationError{Field: "target_stage", Message: "must be one of the pipeline stages"}
	}

	// Dropping a card back onto its own column changes nothing.
	if input.FromStage == input.TargetStage {
		return uc.ContactRepo.FindByID(ctx, input.UserID, input.ContactID)
	}

	return uc.UpdateStage.Execute(ctx, UpdateContactStageInput{
		UserID:              input.UserID,
		ContactID:           input.ContactID,
		TargetStage:         input.TargetStage,
		DeleteScheduledCall: ClearsScheduledCall(input.FromStage, input.TargetStage),
	})
}

// ClearsScheduledCall reports whether a transition abandons a booked call.
func ClearsScheduledCall(from, target entity.Stage) bool {
	return from == entity.StageCallScheduled && target != entity.StageCallDone
}
