package idempotency

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/models"
)

// Guard collapses at-least-once delivery into effectively-once handler
// execution. The dedup ledger row commits in the same transaction as
// whatever state the handler changed, so a handler either ran fully and
// is recorded, or left no trace and will run again on redelivery.
type Guard struct {
	db        *sqlx.DB
	handlerID string
}

func NewGuard(db *sqlx.DB, handlerID string) *Guard {
	return &Guard{db: db, handlerID: handlerID}
}

// RunOnce executes fn inside a transaction unless eventID was already
// processed by this handler. Returns false when the event was a
// duplicate and fn was skipped; duplicates are not errors.
//
// The ledger insert goes first: a concurrent delivery of the same event
// blocks on the primary key until the winner commits, then skips.
func (g *Guard) RunOnce(ctx context.Context, eventID models.ID, fn func(tx *sqlx.Tx) error) (bool, error) {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO processed_events (event_id, handler_id, processed_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (event_id, handler_id) DO NOTHING`,
		eventID.String(), g.handlerID,
	)
	if err != nil {
		return false, errors.Wrapf(err, "failed to claim event %s", eventID)
	}

	claimed, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read claim result")
	}
	if claimed == 0 {
		return false, nil
	}

	if err := fn(tx); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, errors.Wrapf(err, "failed to commit event %s", eventID)
	}

	return true, nil
}
