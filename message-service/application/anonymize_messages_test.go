package application

import (
	"context"
	"testing"
	"time"

	"github.com/skillswap/gdpr-system/message-service/domain"
	"github.com/skillswap/gdpr-system/message-service/mocks"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scrubCommand(userID models.ID) events.StepCommandData {
	return events.StepCommandData{
		SagaID:       models.GenerateUUID(),
		StepID:       events.ParticipantMessageService,
		UserID:       userID,
		DeletionType: events.DeletionTypeFull,
	}
}

func TestAnonymizeMessages_Execute(t *testing.T) {
	t.Run("scrubs sent, drops received, cleans conversations", func(t *testing.T) {
		messages := mocks.NewMockMessageRepository(t)
		userID := models.GenerateUUID()
		cmd := scrubCommand(userID)

		messages.EXPECT().AnonymizeSent(mock.Anything, mock.Anything, userID).Return(int64(4), nil)
		messages.EXPECT().DeleteReceived(mock.Anything, mock.Anything, userID).Return(int64(7), nil)
		messages.EXPECT().DeleteEmptyConversations(mock.Anything, mock.Anything, userID).Return(int64(2), nil)

		uc := NewAnonymizeMessages(messages)
		result, err := uc.Execute(context.Background(), nil, cmd)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, cmd.SagaID, result.SagaID)
		assert.Equal(t, events.ParticipantMessageService, result.Participant)
	})

	t.Run("user without messages succeeds", func(t *testing.T) {
		messages := mocks.NewMockMessageRepository(t)
		userID := models.GenerateUUID()

		messages.EXPECT().AnonymizeSent(mock.Anything, mock.Anything, userID).Return(int64(0), nil)
		messages.EXPECT().DeleteReceived(mock.Anything, mock.Anything, userID).Return(int64(0), nil)
		messages.EXPECT().DeleteEmptyConversations(mock.Anything, mock.Anything, userID).Return(int64(0), nil)

		uc := NewAnonymizeMessages(messages)
		result, err := uc.Execute(context.Background(), nil, scrubCommand(userID))
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("repository error redelivers", func(t *testing.T) {
		messages := mocks.NewMockMessageRepository(t)
		userID := models.GenerateUUID()

		messages.EXPECT().AnonymizeSent(mock.Anything, mock.Anything, userID).
			Return(int64(0), assert.AnError)

		uc := NewAnonymizeMessages(messages)
		_, err := uc.Execute(context.Background(), nil, scrubCommand(userID))
		assert.Error(t, err)
	})
}

func TestCompensateMessages_AlwaysIrreversible(t *testing.T) {
	cmd := scrubCommand(models.GenerateUUID())
	cmd.Compensate = true

	uc := NewCompensateMessages()
	result, err := uc.Execute(context.Background(), nil, cmd)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.Compensated)
	assert.True(t, result.Irreversible)
	assert.Equal(t, cmd.SagaID, result.SagaID)
}

func TestExportMessageData_Execute(t *testing.T) {
	t.Run("exports conversations and messages", func(t *testing.T) {
		messages := mocks.NewMockMessageRepository(t)
		userID := models.GenerateUUID()
		req := events.ExportRequestData{
			CorrelationID: models.GenerateUUID(),
			UserID:        userID,
		}

		export := &domain.Export{
			UserID: userID,
			Conversations: []domain.Conversation{
				{ID: models.GenerateUUID(), InitiatorID: userID, Subject: "guitar lessons", CreatedAt: time.Now()},
			},
			Messages: []domain.Message{
				{ID: models.GenerateUUID(), SenderID: userID, Body: "still on for tuesday?", SentAt: time.Now()},
			},
		}
		messages.EXPECT().ExportForUser(mock.Anything, userID).Return(export, nil)

		uc := NewExportMessageData(messages)
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.Equal(t, events.ParticipantMessageService, resp.ServiceName)
		assert.Contains(t, string(resp.Data), "guitar lessons")
		assert.Contains(t, string(resp.Data), "still on for tuesday?")
	})

	t.Run("repository error surfaces", func(t *testing.T) {
		messages := mocks.NewMockMessageRepository(t)
		req := events.ExportRequestData{
			CorrelationID: models.GenerateUUID(),
			UserID:        models.GenerateUUID(),
		}

		messages.EXPECT().ExportForUser(mock.Anything, req.UserID).Return(nil, assert.AnError)

		uc := NewExportMessageData(messages)
		_, err := uc.Execute(context.Background(), req)
		assert.Error(t, err)
	})
}
