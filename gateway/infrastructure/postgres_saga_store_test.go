package infrastructure

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*PostgresSagaStore, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewPostgresSagaStore(sqlxDB), sqlxDB, mock
}

func startedSaga(t *testing.T) *saga.DeletionSaga {
	t.Helper()
	s := saga.NewDeletionSaga(models.GenerateUUID(), "auth0|12345", events.DeletionTypeFull, events.Participants)
	require.NoError(t, s.Begin(saga.DefaultPolicy))
	s.ClearEvents()
	return s
}

func sagaRowFor(t *testing.T, s *saga.DeletionSaga) *sqlmock.Rows {
	t.Helper()
	steps, err := json.Marshal(s.Steps)
	require.NoError(t, err)

	return sqlmock.NewRows([]string{
		"id", "user_id", "user_external_id", "deletion_type", "status",
		"reason", "steps", "next_deadline", "version", "created_at", "updated_at",
	}).AddRow(
		s.ID.String(), s.UserID.String(), s.UserExternalID, string(s.DeletionType), string(s.Status),
		s.Reason, steps, s.NextDeadline(), s.Version.Value, s.Timestamps.CreatedAt, s.Timestamps.UpdatedAt,
	)
}

func TestPostgresSagaStore_Save(t *testing.T) {
	store, db, mock := newStore(t)
	s := startedSaga(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO deletion_sagas").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), tx, s))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSagaStore_Update(t *testing.T) {
	t.Run("existing row", func(t *testing.T) {
		store, db, mock := newStore(t)
		s := startedSaga(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE deletion_sagas").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Beginx()
		require.NoError(t, err)

		require.NoError(t, store.Update(context.Background(), tx, s))
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		store, db, mock := newStore(t)
		s := startedSaga(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE deletion_sagas").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := db.Beginx()
		require.NoError(t, err)
		defer tx.Rollback()

		err = store.Update(context.Background(), tx, s)
		assert.ErrorIs(t, err, saga.ErrNotFound)
	})
}

func TestPostgresSagaStore_FindByID(t *testing.T) {
	t.Run("round trips steps", func(t *testing.T) {
		store, _, mock := newStore(t)
		s := startedSaga(t)

		mock.ExpectQuery("SELECT (.+) FROM deletion_sagas WHERE id").
			WithArgs(s.ID.String()).
			WillReturnRows(sagaRowFor(t, s))

		got, err := store.FindByID(context.Background(), s.ID)
		require.NoError(t, err)

		assert.Equal(t, s.ID, got.ID)
		assert.Equal(t, s.Status, got.Status)
		require.Len(t, got.Steps, 2)
		assert.Equal(t, saga.StepSent, got.Steps[0].Status)
		assert.Equal(t, 1, got.Steps[0].Attempts)
	})

	t.Run("not found", func(t *testing.T) {
		store, _, mock := newStore(t)

		mock.ExpectQuery("SELECT (.+) FROM deletion_sagas WHERE id").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.FindByID(context.Background(), models.GenerateUUID())
		assert.ErrorIs(t, err, saga.ErrNotFound)
	})
}

func TestPostgresSagaStore_FindByIDForUpdate(t *testing.T) {
	store, db, mock := newStore(t)
	s := startedSaga(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM deletion_sagas WHERE id = (.+) FOR UPDATE").
		WithArgs(s.ID.String()).
		WillReturnRows(sagaRowFor(t, s))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	got, err := store.FindByIDForUpdate(context.Background(), tx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}

func TestPostgresSagaStore_FindExpired(t *testing.T) {
	store, _, mock := newStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow("saga-1").
		AddRow("saga-2")
	mock.ExpectQuery("SELECT id FROM deletion_sagas").
		WithArgs(string(saga.StatusInProgress), string(saga.StatusCompensating), now, 100).
		WillReturnRows(rows)

	ids, err := store.FindExpired(context.Background(), now, 100)
	require.NoError(t, err)
	assert.Equal(t, []models.ID{"saga-1", "saga-2"}, ids)
}
