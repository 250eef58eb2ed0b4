package idempotency

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T) (*Guard, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewGuard(sqlx.NewDb(db, "postgres"), "test-handler"), mock
}

func TestGuard_RunOnce(t *testing.T) {
	eventID := models.GenerateUUID()

	t.Run("first delivery runs and commits", func(t *testing.T) {
		guard, mock := newGuard(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO processed_events").
			WithArgs(eventID.String(), "test-handler").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		ran := false
		executed, err := guard.RunOnce(context.Background(), eventID, func(tx *sqlx.Tx) error {
			ran = true
			return nil
		})

		require.NoError(t, err)
		assert.True(t, executed)
		assert.True(t, ran)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate skips handler", func(t *testing.T) {
		guard, mock := newGuard(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO processed_events").
			WithArgs(eventID.String(), "test-handler").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		executed, err := guard.RunOnce(context.Background(), eventID, func(tx *sqlx.Tx) error {
			t.Fatal("handler must not run for a duplicate")
			return nil
		})

		require.NoError(t, err)
		assert.False(t, executed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("handler error rolls back claim", func(t *testing.T) {
		guard, mock := newGuard(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO processed_events").
			WithArgs(eventID.String(), "test-handler").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		executed, err := guard.RunOnce(context.Background(), eventID, func(tx *sqlx.Tx) error {
			return errors.New("handler exploded")
		})

		assert.EqualError(t, err, "handler exploded")
		assert.False(t, executed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("claim error surfaces", func(t *testing.T) {
		guard, mock := newGuard(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO processed_events").
			WithArgs(eventID.String(), "test-handler").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		executed, err := guard.RunOnce(context.Background(), eventID, func(tx *sqlx.Tx) error {
			return nil
		})

		require.Error(t, err)
		assert.False(t, executed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
