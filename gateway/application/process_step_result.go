package application

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/saga"
	"github.com/skillswap/gdpr-system/shared/telemetry"
)

// ProcessStepResult feeds participant step results into the saga state
// machine. It runs under the dedup guard, so a result redelivered by the
// bus mutates the saga once; results for terminal sagas or already
// settled steps are absorbed by the state machine itself.
type ProcessStepResult struct {
	sagas  saga.Store
	outbox Stager
	guard  Deduper
	policy saga.Policy
}

func NewProcessStepResult(sagas saga.Store, outbox Stager, guard Deduper, policy saga.Policy) *ProcessStepResult {
	return &ProcessStepResult{
		sagas:  sagas,
		outbox: outbox,
		guard:  guard,
		policy: policy,
	}
}

func (uc *ProcessStepResult) Execute(ctx context.Context, event *events.Event) error {
	var data events.StepResultData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to parse step result")
	}

	if data.SagaID.IsZero() || data.StepID == "" {
		return errors.New("step result missing saga or step identifier")
	}

	executed, err := uc.guard.RunOnce(ctx, event.ID, func(tx *sqlx.Tx) error {
		s, err := uc.sagas.FindByIDForUpdate(ctx, tx, data.SagaID)
		if err != nil {
			if errors.Is(err, saga.ErrNotFound) {
				// A result for a saga this store never created; log and
				// drop rather than bounce it around the bus forever.
				log.Printf("step result %s references unknown saga %s", event.ID, data.SagaID)
				return nil
			}
			return errors.Wrap(err, "failed to load saga")
		}

		if s.Status.Terminal() {
			log.Printf("saga %s already %s, absorbing late result from %s", s.ID, s.Status, data.Participant)
			return nil
		}

		if err := s.ApplyResult(data, uc.policy); err != nil {
			return errors.Wrap(err, "failed to apply step result")
		}

		if err := uc.sagas.Update(ctx, tx, s); err != nil {
			return errors.Wrap(err, "failed to update saga")
		}

		if err := uc.outbox.Stage(ctx, tx, s.Events()...); err != nil {
			return errors.Wrap(err, "failed to stage follow-up events")
		}
		s.ClearEvents()

		telemetry.CountSagaTransition(ctx, string(s.Status))
		return nil
	})
	if err != nil {
		return err
	}
	if !executed {
		log.Printf("duplicate step result %s absorbed", event.ID)
		return nil
	}

	telemetry.CountStepResult(ctx, data.Participant, data.Success)
	return nil
}
