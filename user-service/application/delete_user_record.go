package application

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/saga"
)

// DeleteUserRecord executes the user service's deletion step. The
// account is snapshotted into the archive first so a later compensation
// can restore it, then deleted or anonymized depending on the requested
// type. A missing account counts as success: the work is already done.
type DeleteUserRecord struct {
	users UserRepository
}

func NewDeleteUserRecord(users UserRepository) *DeleteUserRecord {
	return &DeleteUserRecord{users: users}
}

// Execute runs inside the handler's dedup transaction. The returned
// result reports the step outcome; a non-nil error means the work could
// not run at all and the command should be redelivered.
func (uc *DeleteUserRecord) Execute(ctx context.Context, tx *sqlx.Tx, cmd events.StepCommandData) (events.StepResultData, error) {
	result := events.StepResultData{
		SagaID:      cmd.SagaID,
		StepID:      cmd.StepID,
		Participant: events.ParticipantUserService,
		CompletedAt: time.Now(),
	}

	switch cmd.DeletionType {
	case events.DeletionTypeFull, events.DeletionTypeAnonymize:
	default:
		result.ErrorCode = saga.ErrorCodeHandlerFailure
		result.ErrorMessage = "unsupported deletion type: " + string(cmd.DeletionType)
		return result, nil
	}

	user, err := uc.users.FindByIDForUpdate(ctx, tx, cmd.UserID)
	if err != nil {
		return result, errors.Wrap(err, "failed to load user")
	}
	if user == nil {
		log.Printf("user %s already removed, reporting success for saga %s", cmd.UserID, cmd.SagaID)
		result.Success = true
		return result, nil
	}

	if err := uc.users.Archive(ctx, tx, cmd.SagaID, user); err != nil {
		return result, errors.Wrap(err, "failed to archive user")
	}

	if cmd.DeletionType == events.DeletionTypeFull {
		if err := uc.users.Delete(ctx, tx, user.ID); err != nil {
			return result, errors.Wrap(err, "failed to delete user")
		}
	} else {
		user.Anonymize()
		if err := uc.users.Update(ctx, tx, user); err != nil {
			return result, errors.Wrap(err, "failed to anonymize user")
		}
	}

	result.Success = true
	return result, nil
}
