package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
)

// ExportMessageData answers an export fan-out with the user's
// conversations and messages. Pure read; runs outside any transaction.
type ExportMessageData struct {
	messages MessageRepository
}

func NewExportMessageData(messages MessageRepository) *ExportMessageData {
	return &ExportMessageData{messages: messages}
}

func (uc *ExportMessageData) Execute(ctx context.Context, req events.ExportRequestData) (events.ExportResponseData, error) {
	resp := events.ExportResponseData{
		CorrelationID: req.CorrelationID,
		ServiceName:   events.ParticipantMessageService,
		UserID:        req.UserID,
		ExportedAt:    time.Now(),
	}

	export, err := uc.messages.ExportForUser(ctx, req.UserID)
	if err != nil {
		return resp, errors.Wrap(err, "failed to export messages")
	}
	export.ExportedAt = time.Now()

	data, err := json.Marshal(export)
	if err != nil {
		return resp, errors.Wrap(err, "failed to marshal message export")
	}

	resp.Success = true
	resp.Data = data
	return resp, nil
}
