package application

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/saga"
	"github.com/skillswap/gdpr-system/shared/telemetry"
)

// RequestDeletionCommand carries an authenticated deletion request
type RequestDeletionCommand struct {
	UserID         models.ID           `json:"user_id"`
	UserExternalID string              `json:"user_external_id"`
	DeletionType   events.DeletionType `json:"deletion_type"`
}

// RequestDeletion starts a deletion saga. The saga record and the first
// step commands commit in one transaction; the caller gets the saga ID
// back synchronously and completion arrives asynchronously.
type RequestDeletion struct {
	db           *sqlx.DB
	sagas        saga.Store
	outbox       Stager
	policy       saga.Policy
	participants []string
}

func NewRequestDeletion(db *sqlx.DB, sagas saga.Store, outbox Stager, policy saga.Policy, participants []string) *RequestDeletion {
	return &RequestDeletion{
		db:           db,
		sagas:        sagas,
		outbox:       outbox,
		policy:       policy,
		participants: participants,
	}
}

func (uc *RequestDeletion) Execute(ctx context.Context, cmd *RequestDeletionCommand) (models.ID, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return "", errors.Wrap(err, "invalid command")
	}

	s := saga.NewDeletionSaga(cmd.UserID, cmd.UserExternalID, cmd.DeletionType, uc.participants)
	if err := s.Begin(uc.policy); err != nil {
		return "", errors.Wrap(err, "failed to begin saga")
	}

	tx, err := uc.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if err := uc.sagas.Save(ctx, tx, s); err != nil {
		return "", errors.Wrap(err, "failed to save saga")
	}

	if err := uc.outbox.Stage(ctx, tx, s.Events()...); err != nil {
		return "", errors.Wrap(err, "failed to stage step commands")
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "failed to commit saga creation")
	}
	s.ClearEvents()

	telemetry.CountSagaTransition(ctx, string(s.Status))

	return s.ID, nil
}

func (uc *RequestDeletion) validateCommand(cmd *RequestDeletionCommand) error {
	if cmd.UserID.IsZero() {
		return errors.New("user ID is required")
	}

	if cmd.UserExternalID == "" {
		return errors.New("user external ID is required")
	}

	if cmd.DeletionType != events.DeletionTypeFull && cmd.DeletionType != events.DeletionTypeAnonymize {
		return errors.New("deletion type must be either FULL or ANONYMIZE")
	}

	return nil
}
