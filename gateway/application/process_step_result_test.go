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

func inProgressSaga(t *testing.T) *saga.DeletionSaga {
	t.Helper()
	s := saga.NewDeletionSaga(models.GenerateUUID(), "auth0|12345", events.DeletionTypeFull, events.Participants)
	require.NoError(t, s.Begin(saga.DefaultPolicy))
	s.ClearEvents()
	return s
}

func resultEvent(s *saga.DeletionSaga, participant string, success bool) *events.Event {
	return events.NewStepResult(events.StepResultData{
		SagaID:      s.ID,
		StepID:      participant,
		Participant: participant,
		Success:     success,
		CompletedAt: time.Now(),
	})
}

// passthroughGuard wires RunOnce so the body executes against the mocks
// with a nil transaction, the way the real guard hands over its tx.
func passthroughGuard(guard *mocks.MockDeduper) {
	guard.EXPECT().RunOnce(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, eventID models.ID, fn func(tx *sqlx.Tx) error) (bool, error) {
			return true, fn(nil)
		})
}

func TestProcessStepResult_AppliesResult(t *testing.T) {
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)
	guard := mocks.NewMockDeduper(t)
	passthroughGuard(guard)

	s := inProgressSaga(t)
	event := resultEvent(s, events.ParticipantUserService, true)

	store.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, s.ID).Return(s, nil)
	store.EXPECT().Update(mock.Anything, mock.Anything, s).Return(nil)
	stager.EXPECT().Stage(mock.Anything, mock.Anything).Return(nil)

	uc := NewProcessStepResult(store, stager, guard, saga.DefaultPolicy)
	require.NoError(t, uc.Execute(context.Background(), event))

	assert.Equal(t, saga.StepSucceeded, s.Steps[0].Status)
	assert.Equal(t, saga.StatusInProgress, s.Status)
}

func TestProcessStepResult_FinalResultStagesCompletion(t *testing.T) {
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)
	guard := mocks.NewMockDeduper(t)
	passthroughGuard(guard)

	s := inProgressSaga(t)
	first := resultEvent(s, events.ParticipantUserService, true)
	second := resultEvent(s, events.ParticipantMessageService, true)

	store.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, s.ID).Return(s, nil)
	store.EXPECT().Update(mock.Anything, mock.Anything, s).Return(nil)

	var staged []*events.Event
	stager.EXPECT().Stage(mock.Anything, mock.Anything).Return(nil).Maybe()
	stager.EXPECT().Stage(mock.Anything, mock.Anything, mock.Anything).
		Run(func(ctx context.Context, tx *sqlx.Tx, evts ...*events.Event) {
			staged = append(staged, evts...)
		}).Return(nil).Maybe()

	uc := NewProcessStepResult(store, stager, guard, saga.DefaultPolicy)
	require.NoError(t, uc.Execute(context.Background(), first))
	require.NoError(t, uc.Execute(context.Background(), second))

	assert.Equal(t, saga.StatusCompleted, s.Status)
	require.Len(t, staged, 1)
	assert.Equal(t, events.SagaCompletedTopic, staged[0].Topic)
	assert.Empty(t, s.Events())
}

func TestProcessStepResult_UnknownSagaDropped(t *testing.T) {
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)
	guard := mocks.NewMockDeduper(t)
	passthroughGuard(guard)

	s := inProgressSaga(t)
	event := resultEvent(s, events.ParticipantUserService, true)

	store.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, s.ID).
		Return(nil, saga.ErrNotFound)

	uc := NewProcessStepResult(store, stager, guard, saga.DefaultPolicy)
	assert.NoError(t, uc.Execute(context.Background(), event))
}

func TestProcessStepResult_TerminalSagaAbsorbsLateResult(t *testing.T) {
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)
	guard := mocks.NewMockDeduper(t)
	passthroughGuard(guard)

	s := inProgressSaga(t)
	require.NoError(t, s.ApplyResult(events.StepResultData{
		SagaID: s.ID, StepID: events.ParticipantUserService, Success: true,
	}, saga.DefaultPolicy))
	require.NoError(t, s.ApplyResult(events.StepResultData{
		SagaID: s.ID, StepID: events.ParticipantMessageService, Success: true,
	}, saga.DefaultPolicy))
	require.True(t, s.Status.Terminal())
	s.ClearEvents()

	store.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, s.ID).Return(s, nil)

	uc := NewProcessStepResult(store, stager, guard, saga.DefaultPolicy)
	event := resultEvent(s, events.ParticipantUserService, false)
	assert.NoError(t, uc.Execute(context.Background(), event))
	assert.Equal(t, saga.StatusCompleted, s.Status)
}

func TestProcessStepResult_DuplicateSkipped(t *testing.T) {
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)
	guard := mocks.NewMockDeduper(t)

	s := inProgressSaga(t)
	event := resultEvent(s, events.ParticipantUserService, true)

	guard.EXPECT().RunOnce(mock.Anything, event.ID, mock.Anything).Return(false, nil)

	uc := NewProcessStepResult(store, stager, guard, saga.DefaultPolicy)
	require.NoError(t, uc.Execute(context.Background(), event))

	// The saga was never loaded or touched
	store.AssertNotCalled(t, "FindByIDForUpdate")
}

func TestProcessStepResult_RejectsMalformedResult(t *testing.T) {
	store := mocks.NewMockStore(t)
	stager := mocks.NewMockStager(t)
	guard := mocks.NewMockDeduper(t)

	uc := NewProcessStepResult(store, stager, guard, saga.DefaultPolicy)

	event := events.NewEvent(models.GenerateUUID(), "deletion.step.result.user-service", events.StepResultData{})
	assert.Error(t, uc.Execute(context.Background(), event))
}
