package application

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/saga"
	"github.com/skillswap/gdpr-system/user-service/domain"
	"github.com/skillswap/gdpr-system/user-service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeUser() *domain.User {
	return &domain.User{
		ID:         models.GenerateUUID(),
		ExternalID: "auth0|12345",
		Email:      "alice@example.com",
		Username:   "alice",
		FullName:   "Alice Example",
		Bio:        "teaches woodworking",
		Status:     domain.UserStatusActive,
		Skills: []domain.Skill{
			{ID: models.GenerateUUID(), Name: "woodworking", Level: domain.SkillLevelExpert, Offered: true},
		},
		Timestamps: models.NewTimestamps(),
		Version:    models.NewVersion(),
	}
}

func deleteCommand(userID models.ID, deletionType events.DeletionType) events.StepCommandData {
	return events.StepCommandData{
		SagaID:       models.GenerateUUID(),
		StepID:       events.ParticipantUserService,
		UserID:       userID,
		DeletionType: deletionType,
	}
}

func TestDeleteUserRecord_FullDeletion(t *testing.T) {
	users := mocks.NewMockUserRepository(t)
	user := activeUser()
	cmd := deleteCommand(user.ID, events.DeletionTypeFull)

	users.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, user.ID).Return(user, nil)
	users.EXPECT().Archive(mock.Anything, mock.Anything, cmd.SagaID, user).Return(nil)
	users.EXPECT().Delete(mock.Anything, mock.Anything, user.ID).Return(nil)

	uc := NewDeleteUserRecord(users)
	result, err := uc.Execute(context.Background(), nil, cmd)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, cmd.SagaID, result.SagaID)
	assert.Equal(t, events.ParticipantUserService, result.Participant)
}

func TestDeleteUserRecord_Anonymize(t *testing.T) {
	users := mocks.NewMockUserRepository(t)
	user := activeUser()
	cmd := deleteCommand(user.ID, events.DeletionTypeAnonymize)

	users.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, user.ID).Return(user, nil)
	users.EXPECT().Archive(mock.Anything, mock.Anything, cmd.SagaID, user).Return(nil)

	var updated *domain.User
	users.EXPECT().Update(mock.Anything, mock.Anything, user).
		Run(func(ctx context.Context, tx *sqlx.Tx, u *domain.User) {
			updated = u
		}).Return(nil)

	uc := NewDeleteUserRecord(users)
	result, err := uc.Execute(context.Background(), nil, cmd)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.NotNil(t, updated)
	assert.Equal(t, domain.UserStatusAnonymized, updated.Status)
	assert.Equal(t, "Deleted User", updated.FullName)
	assert.NotContains(t, updated.Email, "alice")
	assert.Empty(t, updated.Bio)
	assert.Nil(t, updated.Skills)
}

func TestDeleteUserRecord_MissingUserIsSuccess(t *testing.T) {
	users := mocks.NewMockUserRepository(t)
	cmd := deleteCommand(models.GenerateUUID(), events.DeletionTypeFull)

	users.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, cmd.UserID).Return(nil, nil)

	uc := NewDeleteUserRecord(users)
	result, err := uc.Execute(context.Background(), nil, cmd)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestDeleteUserRecord_UnsupportedType(t *testing.T) {
	users := mocks.NewMockUserRepository(t)
	cmd := deleteCommand(models.GenerateUUID(), "PURGE")

	uc := NewDeleteUserRecord(users)
	result, err := uc.Execute(context.Background(), nil, cmd)

	// A domain-invalid command is a step failure, not a redelivery
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, saga.ErrorCodeHandlerFailure, result.ErrorCode)
}

func TestDeleteUserRecord_InfrastructureErrorRedelivers(t *testing.T) {
	users := mocks.NewMockUserRepository(t)
	user := activeUser()
	cmd := deleteCommand(user.ID, events.DeletionTypeFull)

	users.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything, user.ID).Return(user, nil)
	users.EXPECT().Archive(mock.Anything, mock.Anything, cmd.SagaID, user).Return(assert.AnError)

	uc := NewDeleteUserRecord(users)
	_, err := uc.Execute(context.Background(), nil, cmd)
	assert.Error(t, err)
}

func TestRestoreUserRecord_Execute(t *testing.T) {
	t.Run("restores archived snapshot", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		user := activeUser()
		cmd := deleteCommand(user.ID, events.DeletionTypeFull)
		cmd.Compensate = true

		users.EXPECT().Restore(mock.Anything, mock.Anything, cmd.SagaID).Return(user, nil)

		uc := NewRestoreUserRecord(users)
		result, err := uc.Execute(context.Background(), nil, cmd)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.True(t, result.Compensated)
		assert.False(t, result.Irreversible)
	})

	t.Run("nothing archived still reports done", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		cmd := deleteCommand(models.GenerateUUID(), events.DeletionTypeFull)
		cmd.Compensate = true

		users.EXPECT().Restore(mock.Anything, mock.Anything, cmd.SagaID).Return(nil, nil)

		uc := NewRestoreUserRecord(users)
		result, err := uc.Execute(context.Background(), nil, cmd)
		require.NoError(t, err)
		assert.True(t, result.Compensated)
	})
}

func TestExportUserData_Execute(t *testing.T) {
	t.Run("exports profile and skills", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		user := activeUser()
		req := events.ExportRequestData{
			CorrelationID: models.GenerateUUID(),
			UserID:        user.ID,
		}

		users.EXPECT().FindByID(mock.Anything, user.ID).Return(user, nil)

		uc := NewExportUserData(users)
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.Equal(t, req.CorrelationID, resp.CorrelationID)
		assert.Equal(t, events.ParticipantUserService, resp.ServiceName)
		assert.Contains(t, string(resp.Data), "alice@example.com")
		assert.Contains(t, string(resp.Data), "woodworking")
	})

	t.Run("unknown user reports error not failure", func(t *testing.T) {
		users := mocks.NewMockUserRepository(t)
		req := events.ExportRequestData{
			CorrelationID: models.GenerateUUID(),
			UserID:        models.GenerateUUID(),
		}

		users.EXPECT().FindByID(mock.Anything, req.UserID).Return(nil, nil)

		uc := NewExportUserData(users)
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.False(t, resp.Success)
		assert.Equal(t, "user not found", resp.ErrorMessage)
	})
}
