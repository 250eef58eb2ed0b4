package handlers

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/message-service/application"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// MessageHandlerID keys the dedup ledger rows written for this handler.
const MessageHandlerID = "message-service-event-handler"

// Deduper runs a function at most once per event within a transaction.
type Deduper interface {
	RunOnce(ctx context.Context, eventID models.ID, fn func(tx *sqlx.Tx) error) (bool, error)
}

// Stager writes events into the outbox inside the caller's transaction
type Stager interface {
	Stage(ctx context.Context, tx *sqlx.Tx, evts ...*events.Event) error
}

// MessageEventHandlers handles deletion commands and export requests
// addressed to the message service
type MessageEventHandlers struct {
	anonymizeMessages  *application.AnonymizeMessages
	compensateMessages *application.CompensateMessages
	exportMessageData  *application.ExportMessageData
	guard              Deduper
	outbox             Stager
	publisher          events.Publisher
}

// NewMessageEventHandlers creates new message event handlers
func NewMessageEventHandlers(
	anonymizeMessages *application.AnonymizeMessages,
	compensateMessages *application.CompensateMessages,
	exportMessageData *application.ExportMessageData,
	guard Deduper,
	outbox Stager,
	publisher events.Publisher,
) *MessageEventHandlers {
	return &MessageEventHandlers{
		anonymizeMessages:  anonymizeMessages,
		compensateMessages: compensateMessages,
		exportMessageData:  exportMessageData,
		guard:              guard,
		outbox:             outbox,
		publisher:          publisher,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *MessageEventHandlers) HandlerID() string {
	return MessageHandlerID
}

// Topics lists every topic this handler consumes
func (h *MessageEventHandlers) Topics() []events.Topic {
	return []events.Topic{
		events.StepCommandTopic(events.ParticipantMessageService),
		events.ExportRequestTopic(events.ParticipantMessageService),
	}
}

// Handle implements the events.EventHandler interface
func (h *MessageEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.Topic {
	case events.StepCommandTopic(events.ParticipantMessageService):
		return h.handleStepCommand(ctx, event)
	case events.ExportRequestTopic(events.ParticipantMessageService):
		return h.handleExportRequest(ctx, event)
	default:
		// Unknown topic, ignore
		return nil
	}
}

// handleStepCommand runs the scrub (or its compensation) and stages the
// result in the same transaction that claims the event.
func (h *MessageEventHandlers) handleStepCommand(ctx context.Context, event *events.Event) error {
	var cmd events.StepCommandData
	if err := event.UnmarshalPayload(&cmd); err != nil {
		return errors.Wrap(err, "failed to parse step command")
	}

	executed, err := h.guard.RunOnce(ctx, event.ID, func(tx *sqlx.Tx) error {
		var result events.StepResultData
		var execErr error
		if cmd.Compensate {
			result, execErr = h.compensateMessages.Execute(ctx, tx, cmd)
		} else {
			result, execErr = h.anonymizeMessages.Execute(ctx, tx, cmd)
		}
		if execErr != nil {
			return execErr
		}

		telemetry.RecordCounter(ctx, "gdpr_step_commands_total", "Deletion step commands processed",
			1,
			attribute.String("participant", events.ParticipantMessageService),
			attribute.Bool("compensate", cmd.Compensate),
			attribute.Bool("success", result.Success),
		)

		return h.outbox.Stage(ctx, tx, events.NewStepResult(result))
	})
	if err != nil {
		return err
	}
	if !executed {
		log.Printf("duplicate step command %s absorbed", event.ID)
	}

	return nil
}

func (h *MessageEventHandlers) handleExportRequest(ctx context.Context, event *events.Event) error {
	var req events.ExportRequestData
	if err := event.UnmarshalPayload(&req); err != nil {
		return errors.Wrap(err, "failed to parse export request")
	}

	resp, err := h.exportMessageData.Execute(ctx, req)
	if err != nil {
		return err
	}

	return h.publisher.Publish(ctx, events.NewExportResponse(resp))
}
