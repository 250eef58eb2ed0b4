package application

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
)

// AnonymizeMessages executes the message service's deletion step: blank
// every message the user sent, drop every message they received, then
// drop conversations left empty. Both deletion types behave the same
// here since removing the content is the whole point. Running against a
// user with no messages is a success with zero rows touched.
type AnonymizeMessages struct {
	messages MessageRepository
}

func NewAnonymizeMessages(messages MessageRepository) *AnonymizeMessages {
	return &AnonymizeMessages{messages: messages}
}

func (uc *AnonymizeMessages) Execute(ctx context.Context, tx *sqlx.Tx, cmd events.StepCommandData) (events.StepResultData, error) {
	result := events.StepResultData{
		SagaID:      cmd.SagaID,
		StepID:      cmd.StepID,
		Participant: events.ParticipantMessageService,
		CompletedAt: time.Now(),
	}

	anonymized, err := uc.messages.AnonymizeSent(ctx, tx, cmd.UserID)
	if err != nil {
		return result, errors.Wrap(err, "failed to anonymize sent messages")
	}

	deleted, err := uc.messages.DeleteReceived(ctx, tx, cmd.UserID)
	if err != nil {
		return result, errors.Wrap(err, "failed to delete received messages")
	}

	conversations, err := uc.messages.DeleteEmptyConversations(ctx, tx, cmd.UserID)
	if err != nil {
		return result, errors.Wrap(err, "failed to clean empty conversations")
	}

	log.Printf("saga %s: anonymized %d sent, deleted %d received, dropped %d empty conversations for user %s",
		cmd.SagaID, anonymized, deleted, conversations, cmd.UserID)

	result.Success = true
	return result, nil
}
