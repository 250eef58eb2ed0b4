package application

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
)

// Deduper collapses redelivered events into one handler execution.
// Implemented by the idempotency guard; tests substitute an in-memory one.
type Deduper interface {
	RunOnce(ctx context.Context, eventID models.ID, fn func(tx *sqlx.Tx) error) (bool, error)
}

// Stager writes events into the outbox inside the caller's transaction
type Stager interface {
	Stage(ctx context.Context, tx *sqlx.Tx, evts ...*events.Event) error
}
