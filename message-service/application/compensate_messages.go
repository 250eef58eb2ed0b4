package application

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/gdpr-system/shared/events"
)

// CompensateMessages answers a compensation command. Message scrubbing
// destroys the original content, so there is nothing to put back; the
// step acknowledges the compensation and flags it irreversible so the
// saga's final failure record says which data is gone for good.
type CompensateMessages struct{}

func NewCompensateMessages() *CompensateMessages {
	return &CompensateMessages{}
}

func (uc *CompensateMessages) Execute(ctx context.Context, _ *sqlx.Tx, cmd events.StepCommandData) (events.StepResultData, error) {
	log.Printf("saga %s: message scrub for user %s cannot be undone, acknowledging as irreversible",
		cmd.SagaID, cmd.UserID)

	return events.StepResultData{
		SagaID:       cmd.SagaID,
		StepID:       cmd.StepID,
		Participant:  events.ParticipantMessageService,
		Success:      true,
		Compensated:  true,
		Irreversible: true,
		CompletedAt:  time.Now(),
	}, nil
}
