package application

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
)

// RestoreUserRecord compensates a completed deletion step by putting
// the archived snapshot back. The archive row is consumed on restore,
// so a redelivered compensation finds nothing and still reports done.
type RestoreUserRecord struct {
	users UserRepository
}

func NewRestoreUserRecord(users UserRepository) *RestoreUserRecord {
	return &RestoreUserRecord{users: users}
}

func (uc *RestoreUserRecord) Execute(ctx context.Context, tx *sqlx.Tx, cmd events.StepCommandData) (events.StepResultData, error) {
	result := events.StepResultData{
		SagaID:      cmd.SagaID,
		StepID:      cmd.StepID,
		Participant: events.ParticipantUserService,
		Compensated: true,
		Success:     true,
		CompletedAt: time.Now(),
	}

	user, err := uc.users.Restore(ctx, tx, cmd.SagaID)
	if err != nil {
		return result, errors.Wrap(err, "failed to restore user")
	}
	if user == nil {
		log.Printf("no archived user for saga %s, nothing to restore", cmd.SagaID)
		return result, nil
	}

	log.Printf("restored user %s for saga %s", user.ID, cmd.SagaID)
	return result, nil
}
