package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	published []*events.Event
	err       error
}

func (p *capturePublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, evts...)
	return nil
}

func newOutbox(t *testing.T) (*Outbox, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewOutbox(sqlxDB), sqlxDB, mock
}

func testEvent() *events.Event {
	return events.NewEvent(models.GenerateUUID(), "deletion.saga.completed", events.SagaCompletedData{
		SagaID: models.GenerateUUID(),
	})
}

func TestOutbox_Stage(t *testing.T) {
	outbox, db, mock := newOutbox(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	require.NoError(t, outbox.Stage(context.Background(), tx, testEvent(), testEvent()))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutbox_StageRollsBackWithCaller(t *testing.T) {
	outbox, db, mock := newOutbox(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	err = outbox.Stage(context.Background(), tx, testEvent())
	require.Error(t, err)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutbox_FetchUnpublished(t *testing.T) {
	outbox, _, mock := newOutbox(t)

	payload, err := testEvent().ToJSON()
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "event_id", "payload", "status", "created_at", "published_at"}).
		AddRow("rec-1", "evt-1", payload, StatusUnpublished, time.Now(), nil)

	mock.ExpectQuery("SELECT id, event_id, payload, status, created_at, published_at").
		WithArgs(StatusUnpublished, 50).
		WillReturnRows(rows)

	records, err := outbox.FetchUnpublished(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "rec-1", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutbox_MarkPublishedWithoutIDs(t *testing.T) {
	outbox, _, mock := newOutbox(t)

	// No round trip for an empty batch
	require.NoError(t, outbox.MarkPublished(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublisher_Drain(t *testing.T) {
	t.Run("publishes and marks batch", func(t *testing.T) {
		outbox, _, mock := newOutbox(t)
		bus := &capturePublisher{}

		event := testEvent()
		payload, err := event.ToJSON()
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "event_id", "payload", "status", "created_at", "published_at"}).
			AddRow("rec-1", event.ID.String(), payload, StatusUnpublished, time.Now(), nil)
		mock.ExpectQuery("SELECT id, event_id, payload, status, created_at, published_at").
			WillReturnRows(rows)
		mock.ExpectExec("UPDATE outbox_events SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))

		publisher := NewPublisher(outbox, bus)
		require.NoError(t, publisher.Drain(context.Background()))

		require.Len(t, bus.published, 1)
		assert.Equal(t, event.ID, bus.published[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bus failure leaves records unpublished", func(t *testing.T) {
		outbox, _, mock := newOutbox(t)
		bus := &capturePublisher{err: events.ErrBusUnavailable}

		payload, err := testEvent().ToJSON()
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "event_id", "payload", "status", "created_at", "published_at"}).
			AddRow("rec-1", "evt-1", payload, StatusUnpublished, time.Now(), nil)
		mock.ExpectQuery("SELECT id, event_id, payload, status, created_at, published_at").
			WillReturnRows(rows)

		publisher := NewPublisher(outbox, bus)
		err = publisher.Drain(context.Background())
		assert.ErrorIs(t, err, events.ErrBusUnavailable)

		// No UPDATE was expected; the rows stay queued for the next poll
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("undecodable record is dropped not wedged", func(t *testing.T) {
		outbox, _, mock := newOutbox(t)
		bus := &capturePublisher{}

		rows := sqlmock.NewRows([]string{"id", "event_id", "payload", "status", "created_at", "published_at"}).
			AddRow("rec-bad", "evt-bad", []byte("{not json"), StatusUnpublished, time.Now(), nil)
		mock.ExpectQuery("SELECT id, event_id, payload, status, created_at, published_at").
			WillReturnRows(rows)
		mock.ExpectExec("UPDATE outbox_events SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))

		publisher := NewPublisher(outbox, bus)
		require.NoError(t, publisher.Drain(context.Background()))

		assert.Empty(t, bus.published)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty queue is a no op", func(t *testing.T) {
		outbox, _, mock := newOutbox(t)
		bus := &capturePublisher{}

		mock.ExpectQuery("SELECT id, event_id, payload, status, created_at, published_at").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "payload", "status", "created_at", "published_at"}))

		publisher := NewPublisher(outbox, bus)
		require.NoError(t, publisher.Drain(context.Background()))
		assert.Empty(t, bus.published)
	})
}
