package outbox

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
)

// Publish status of a staged record
const (
	StatusUnpublished = "unpublished"
	StatusPublished   = "published"
)

// Record is the local, same-transaction staging of an event pending
// publication.
type Record struct {
	ID          string     `db:"id"`
	EventID     string     `db:"event_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	PublishedAt *time.Time `db:"published_at"`
}

// Outbox stages events inside the caller's transaction and hands them to
// the background publisher. A committed state change is therefore never
// silently unaccompanied by its event.
type Outbox struct {
	db *sqlx.DB
}

func NewOutbox(db *sqlx.DB) *Outbox {
	return &Outbox{db: db}
}

// Stage writes one record per event inside tx. It never opens its own
// transaction: staging must share the commit of the state change it
// announces.
func (o *Outbox) Stage(ctx context.Context, tx *sqlx.Tx, evts ...*events.Event) error {
	for _, event := range evts {
		payload, err := event.ToJSON()
		if err != nil {
			return errors.Wrapf(err, "failed to marshal event %s", event.ID)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO outbox_events (id, event_id, payload, status, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			models.GenerateUUID().String(), event.ID.String(), payload, StatusUnpublished, time.Now(),
		)
		if err != nil {
			return errors.Wrapf(err, "failed to stage event %s", event.ID)
		}
	}

	return nil
}

// FetchUnpublished returns the oldest unpublished records
func (o *Outbox) FetchUnpublished(ctx context.Context, limit int) ([]Record, error) {
	var records []Record
	err := o.db.SelectContext(ctx, &records,
		`SELECT id, event_id, payload, status, created_at, published_at
		 FROM outbox_events
		 WHERE status = $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		StatusUnpublished, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch unpublished outbox records")
	}
	return records, nil
}

// MarkPublished flips records to published after bus acknowledgment
func (o *Outbox) MarkPublished(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		`UPDATE outbox_events SET status = ?, published_at = ? WHERE id IN (?)`,
		StatusPublished, time.Now(), ids,
	)
	if err != nil {
		return errors.Wrap(err, "failed to build mark published query")
	}

	_, err = o.db.ExecContext(ctx, o.db.Rebind(query), args...)
	if err != nil {
		return errors.Wrap(err, "failed to mark outbox records published")
	}
	return nil
}
