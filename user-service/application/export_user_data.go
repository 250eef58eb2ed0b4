package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
)

// ExportUserData answers an export fan-out with the user's profile and
// skills. Pure read; runs outside any transaction.
type ExportUserData struct {
	users UserRepository
}

func NewExportUserData(users UserRepository) *ExportUserData {
	return &ExportUserData{users: users}
}

func (uc *ExportUserData) Execute(ctx context.Context, req events.ExportRequestData) (events.ExportResponseData, error) {
	resp := events.ExportResponseData{
		CorrelationID: req.CorrelationID,
		ServiceName:   events.ParticipantUserService,
		UserID:        req.UserID,
		ExportedAt:    time.Now(),
	}

	user, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		return resp, errors.Wrap(err, "failed to load user")
	}
	if user == nil {
		resp.ErrorMessage = "user not found"
		return resp, nil
	}

	data, err := json.Marshal(user.ToExport())
	if err != nil {
		return resp, errors.Wrap(err, "failed to marshal user export")
	}

	resp.Success = true
	resp.Data = data
	return resp, nil
}
