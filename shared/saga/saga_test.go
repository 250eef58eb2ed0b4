package saga

import (
	"testing"
	"time"

	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParticipants = []string{events.ParticipantUserService, events.ParticipantMessageService}

func newTestSaga(t *testing.T) *DeletionSaga {
	t.Helper()
	s := NewDeletionSaga(models.GenerateUUID(), "auth0|12345", events.DeletionTypeFull, testParticipants)
	require.NoError(t, s.Begin(DefaultPolicy))
	s.ClearEvents()
	return s
}

func successResult(s *DeletionSaga, stepID string) events.StepResultData {
	return events.StepResultData{
		SagaID:      s.ID,
		StepID:      stepID,
		Participant: stepID,
		Success:     true,
		CompletedAt: time.Now(),
	}
}

func failureResult(s *DeletionSaga, stepID string) events.StepResultData {
	return events.StepResultData{
		SagaID:       s.ID,
		StepID:       stepID,
		Participant:  stepID,
		Success:      false,
		ErrorCode:    ErrorCodeHandlerFailure,
		ErrorMessage: "boom",
		CompletedAt:  time.Now(),
	}
}

func compensatedResult(s *DeletionSaga, stepID string, irreversible bool) events.StepResultData {
	return events.StepResultData{
		SagaID:       s.ID,
		StepID:       stepID,
		Participant:  stepID,
		Success:      true,
		Compensated:  true,
		Irreversible: irreversible,
		CompletedAt:  time.Now(),
	}
}

func TestNewDeletionSaga(t *testing.T) {
	userID := models.GenerateUUID()
	s := NewDeletionSaga(userID, "auth0|12345", events.DeletionTypeAnonymize, testParticipants)

	assert.Equal(t, StatusPending, s.Status)
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, events.DeletionTypeAnonymize, s.DeletionType)
	require.Len(t, s.Steps, 2)
	for i, p := range testParticipants {
		assert.Equal(t, p, s.Steps[i].ID)
		assert.Equal(t, p, s.Steps[i].Participant)
		assert.Equal(t, StepNotStarted, s.Steps[i].Status)
		assert.Zero(t, s.Steps[i].Attempts)
	}
	assert.Empty(t, s.Events())
}

func TestDeletionSaga_Begin(t *testing.T) {
	s := NewDeletionSaga(models.GenerateUUID(), "auth0|12345", events.DeletionTypeFull, testParticipants)

	require.NoError(t, s.Begin(DefaultPolicy))

	assert.Equal(t, StatusInProgress, s.Status)
	require.Len(t, s.Events(), 2)
	for i, step := range s.Steps {
		assert.Equal(t, StepSent, step.Status)
		assert.Equal(t, 1, step.Attempts)
		require.NotNil(t, step.Deadline)

		evt := s.Events()[i]
		assert.Equal(t, events.StepCommandTopic(step.Participant), evt.Topic)
		assert.Equal(t, s.ID, evt.SagaID)
		assert.Equal(t, step.ID, evt.StepID)
	}

	// Commands for one saga share the saga's ordering domain
	assert.Equal(t, s.ID.String(), s.Events()[0].PartitionKey())

	// Starting twice is rejected
	assert.Error(t, s.Begin(DefaultPolicy))
}

func TestDeletionSaga_CompletesWhenAllStepsSucceed(t *testing.T) {
	s := newTestSaga(t)

	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantUserService), DefaultPolicy))
	assert.Equal(t, StatusInProgress, s.Status)
	assert.Empty(t, s.Events())

	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantMessageService), DefaultPolicy))
	assert.Equal(t, StatusCompleted, s.Status)

	require.Len(t, s.Events(), 1)
	assert.Equal(t, events.SagaCompletedTopic, s.Events()[0].Topic)
	assert.Nil(t, s.NextDeadline())
}

func TestDeletionSaga_DuplicateSuccessAbsorbed(t *testing.T) {
	s := newTestSaga(t)

	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantUserService), DefaultPolicy))
	version := s.Version.Value

	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantUserService), DefaultPolicy))
	assert.Equal(t, StatusInProgress, s.Status)
	assert.Equal(t, version, s.Version.Value)
	assert.Empty(t, s.Events())
}

func TestDeletionSaga_FailureRetriesBelowMaxAttempts(t *testing.T) {
	s := newTestSaga(t)

	require.NoError(t, s.ApplyResult(failureResult(s, events.ParticipantUserService), DefaultPolicy))

	step := s.Steps[0]
	assert.Equal(t, StatusInProgress, s.Status)
	assert.Equal(t, StepSent, step.Status)
	assert.Equal(t, 2, step.Attempts)
	assert.Equal(t, "boom", step.LastError)

	// The re-sent command carries the same deterministic event ID, so a
	// participant that already executed the first delivery absorbs it.
	require.Len(t, s.Events(), 1)
	resent := s.Events()[0]
	expected := events.NewStepCommand(events.ParticipantUserService, events.StepCommandData{
		SagaID: s.ID,
		StepID: events.ParticipantUserService,
	})
	assert.Equal(t, expected.ID, resent.ID)
}

func TestDeletionSaga_FailureAtMaxAttemptsCompensates(t *testing.T) {
	s := newTestSaga(t)
	policy := Policy{MaxAttempts: 1, StepTimeout: 30 * time.Second}

	// user-service succeeded, message-service exhausts its attempts
	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantUserService), policy))
	require.NoError(t, s.ApplyResult(failureResult(s, events.ParticipantMessageService), policy))

	assert.Equal(t, StatusCompensating, s.Status)
	assert.Equal(t, StepFailed, s.Steps[1].Status)
	assert.Contains(t, s.Reason, ErrorCodeHandlerFailure)

	// Exactly one compensation command, addressed to the succeeded step
	require.Len(t, s.Events(), 1)
	comp := s.Events()[0]
	assert.Equal(t, events.StepCommandTopic(events.ParticipantUserService), comp.Topic)

	var data events.StepCommandData
	require.NoError(t, comp.UnmarshalPayload(&data))
	assert.True(t, data.Compensate)

	// Compensation confirmation drains the saga into failed
	s.ClearEvents()
	require.NoError(t, s.ApplyResult(compensatedResult(s, events.ParticipantUserService, false), policy))
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, StepCompensated, s.Steps[0].Status)

	require.Len(t, s.Events(), 1)
	assert.Equal(t, events.SagaFailedTopic, s.Events()[0].Topic)
}

func TestDeletionSaga_FailureWithNothingToCompensate(t *testing.T) {
	s := newTestSaga(t)
	policy := Policy{MaxAttempts: 1, StepTimeout: 30 * time.Second}

	require.NoError(t, s.ApplyResult(failureResult(s, events.ParticipantUserService), policy))

	// No succeeded steps exist, so the saga fails immediately
	assert.Equal(t, StatusFailed, s.Status)
	require.Len(t, s.Events(), 1)
	assert.Equal(t, events.SagaFailedTopic, s.Events()[0].Topic)
}

func TestDeletionSaga_IrreversibleCompensationFlagged(t *testing.T) {
	s := newTestSaga(t)
	policy := Policy{MaxAttempts: 1, StepTimeout: 30 * time.Second}

	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantMessageService), policy))
	require.NoError(t, s.ApplyResult(failureResult(s, events.ParticipantUserService), policy))
	require.Equal(t, StatusCompensating, s.Status)
	s.ClearEvents()

	require.NoError(t, s.ApplyResult(compensatedResult(s, events.ParticipantMessageService, true), policy))

	assert.Equal(t, StatusFailed, s.Status)
	assert.Contains(t, s.Reason, ErrorCodeIrreversible)

	require.Len(t, s.Events(), 1)
	var data events.SagaFailedData
	require.NoError(t, s.Events()[0].UnmarshalPayload(&data))
	assert.True(t, data.Irreversible)
}

func TestDeletionSaga_LateSuccessDuringCompensation(t *testing.T) {
	s := newTestSaga(t)
	policy := Policy{MaxAttempts: 1, StepTimeout: 30 * time.Second}

	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantUserService), policy))
	require.NoError(t, s.ApplyResult(failureResult(s, events.ParticipantMessageService), policy))
	require.Equal(t, StatusCompensating, s.Status)
	s.ClearEvents()

	// The failed step's earlier attempt lands after all. It succeeded,
	// so it now needs compensating too.
	s.Steps[1].Status = StepSent // simulate a still-outstanding attempt
	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantMessageService), policy))

	assert.Equal(t, StatusCompensating, s.Status)
	assert.Equal(t, StepSucceeded, s.Steps[1].Status)
	require.Len(t, s.Events(), 1)

	var data events.StepCommandData
	require.NoError(t, s.Events()[0].UnmarshalPayload(&data))
	assert.True(t, data.Compensate)
	assert.Equal(t, events.ParticipantMessageService, data.StepID)
}

func TestDeletionSaga_ResultsAfterTerminalAbsorbed(t *testing.T) {
	s := newTestSaga(t)

	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantUserService), DefaultPolicy))
	require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantMessageService), DefaultPolicy))
	require.Equal(t, StatusCompleted, s.Status)
	s.ClearEvents()

	require.NoError(t, s.ApplyResult(failureResult(s, events.ParticipantUserService), DefaultPolicy))
	assert.Equal(t, StatusCompleted, s.Status)
	assert.Empty(t, s.Events())
}

func TestDeletionSaga_UnknownStepRejected(t *testing.T) {
	s := newTestSaga(t)

	err := s.ApplyResult(successResult(s, "billing-service"), DefaultPolicy)
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestDeletionSaga_ExpireDeadlines(t *testing.T) {
	t.Run("resends before max attempts", func(t *testing.T) {
		s := newTestSaga(t)

		changed := s.ExpireDeadlines(time.Now().Add(time.Minute), DefaultPolicy)

		assert.True(t, changed)
		assert.Equal(t, StatusInProgress, s.Status)
		for _, step := range s.Steps {
			assert.Equal(t, StepSent, step.Status)
			assert.Equal(t, 2, step.Attempts)
			assert.Equal(t, "no result before deadline", step.LastError)
		}
		assert.Len(t, s.Events(), 2)
	})

	t.Run("compensates at max attempts", func(t *testing.T) {
		s := newTestSaga(t)
		policy := Policy{MaxAttempts: 1, StepTimeout: 30 * time.Second}

		require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantUserService), policy))
		s.ClearEvents()

		changed := s.ExpireDeadlines(time.Now().Add(time.Minute), policy)

		assert.True(t, changed)
		assert.Equal(t, StatusCompensating, s.Status)
		assert.Contains(t, s.Reason, ErrorCodeTimeout)
		require.Len(t, s.Events(), 1)

		var data events.StepCommandData
		require.NoError(t, s.Events()[0].UnmarshalPayload(&data))
		assert.True(t, data.Compensate)
		assert.Equal(t, events.ParticipantUserService, data.StepID)
	})

	t.Run("nothing due", func(t *testing.T) {
		s := newTestSaga(t)

		assert.False(t, s.ExpireDeadlines(time.Now().Add(-time.Minute), DefaultPolicy))
		assert.Empty(t, s.Events())
	})

	t.Run("terminal saga untouched", func(t *testing.T) {
		s := newTestSaga(t)
		require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantUserService), DefaultPolicy))
		require.NoError(t, s.ApplyResult(successResult(s, events.ParticipantMessageService), DefaultPolicy))
		s.ClearEvents()

		assert.False(t, s.ExpireDeadlines(time.Now().Add(time.Hour), DefaultPolicy))
	})
}

func TestDeletionSaga_NextDeadline(t *testing.T) {
	s := newTestSaga(t)

	early := time.Now().Add(10 * time.Second)
	late := time.Now().Add(20 * time.Second)
	s.Steps[0].Deadline = &late
	s.Steps[1].Deadline = &early

	got := s.NextDeadline()
	require.NotNil(t, got)
	assert.Equal(t, early, *got)

	// Settled steps stop contributing
	s.Steps[1].Status = StepSucceeded
	got = s.NextDeadline()
	require.NotNil(t, got)
	assert.Equal(t, late, *got)
}
