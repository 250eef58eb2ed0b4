package application

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/gdpr-system/gateway/mocks"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweepTimeouts_ExpiresOverdueSaga(t *testing.T) {
	db, dbMock := newTestDB(t)
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)

	s := inProgressSaga(t)
	past := time.Now().Add(-time.Minute)
	for _, step := range s.Steps {
		step.Deadline = &past
	}

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	store.EXPECT().FindExpired(mock.Anything, mock.Anything, 100).
		Return([]models.ID{s.ID}, nil)
	store.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, s.ID).Return(s, nil)
	store.EXPECT().Update(mock.Anything, mock.Anything, s).Return(nil)

	var staged []*events.Event
	stager.EXPECT().Stage(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(ctx context.Context, tx *sqlx.Tx, evts ...*events.Event) {
			staged = append(staged, evts...)
		}).Return(nil)

	uc := NewSweepTimeouts(db, store, stager, saga.DefaultPolicy, time.Second)
	require.NoError(t, uc.Sweep(context.Background()))

	// Both silent steps were re-sent with fresh deadlines
	assert.Equal(t, saga.StatusInProgress, s.Status)
	require.Len(t, staged, 2)
	for _, step := range s.Steps {
		assert.Equal(t, 2, step.Attempts)
	}
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSweepTimeouts_RecheckUnderLockSkipsSettledSaga(t *testing.T) {
	db, dbMock := newTestDB(t)
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)

	// A result landed between the list query and the lock; nothing is due
	s := inProgressSaga(t)
	future := time.Now().Add(time.Minute)
	for _, step := range s.Steps {
		step.Deadline = &future
	}

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	store.EXPECT().FindExpired(mock.Anything, mock.Anything, 100).
		Return([]models.ID{s.ID}, nil)
	store.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, s.ID).Return(s, nil)

	uc := NewSweepTimeouts(db, store, stager, saga.DefaultPolicy, time.Second)
	require.NoError(t, uc.Sweep(context.Background()))

	store.AssertNotCalled(t, "Update")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSweepTimeouts_ListFailureSurfaces(t *testing.T) {
	db, _ := newTestDB(t)
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)

	store.EXPECT().FindExpired(mock.Anything, mock.Anything, 100).
		Return(nil, assert.AnError)

	uc := NewSweepTimeouts(db, store, stager, saga.DefaultPolicy, time.Second)
	assert.Error(t, uc.Sweep(context.Background()))
}
