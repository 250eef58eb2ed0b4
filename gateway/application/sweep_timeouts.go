package application

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/saga"
	"github.com/skillswap/gdpr-system/shared/telemetry"
)

const sweepBatchSize = 100

// SweepTimeouts bounds how long a saga waits on a silent participant.
// Elapsed step deadlines are treated as implicit failures and fed into
// the same retry/compensation path as explicit failure results.
type SweepTimeouts struct {
	db       *sqlx.DB
	sagas    saga.Store
	outbox   Stager
	policy   saga.Policy
	interval time.Duration
}

func NewSweepTimeouts(db *sqlx.DB, sagas saga.Store, outbox Stager, policy saga.Policy, interval time.Duration) *SweepTimeouts {
	return &SweepTimeouts{
		db:       db,
		sagas:    sagas,
		outbox:   outbox,
		policy:   policy,
		interval: interval,
	}
}

// Run sweeps on a ticker until ctx is canceled
func (uc *SweepTimeouts) Run(ctx context.Context) error {
	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := uc.Sweep(ctx); err != nil {
				log.Printf("timeout sweep failed: %v", err)
			}
		}
	}
}

// Sweep expires one batch of overdue sagas. Each saga is handled in its
// own transaction so one poisoned record cannot wedge the sweep.
func (uc *SweepTimeouts) Sweep(ctx context.Context) error {
	ids, err := uc.sagas.FindExpired(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		return errors.Wrap(err, "failed to list expired sagas")
	}

	for _, id := range ids {
		if err := uc.expire(ctx, id); err != nil {
			log.Printf("failed to expire saga %s: %v", id, err)
		}
	}

	return nil
}

func (uc *SweepTimeouts) expire(ctx context.Context, id models.ID) error {
	tx, err := uc.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	s, err := uc.sagas.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return errors.Wrap(err, "failed to load saga")
	}

	// Re-check under lock: a result may have landed between the list
	// query and here.
	if !s.ExpireDeadlines(time.Now(), uc.policy) {
		return nil
	}

	if err := uc.sagas.Update(ctx, tx, s); err != nil {
		return errors.Wrap(err, "failed to update saga")
	}

	if err := uc.outbox.Stage(ctx, tx, s.Events()...); err != nil {
		return errors.Wrap(err, "failed to stage follow-up events")
	}
	s.ClearEvents()

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit expiry")
	}

	telemetry.CountSagaTransition(ctx, string(s.Status))
	return nil
}
