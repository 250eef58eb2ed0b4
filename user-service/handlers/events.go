package handlers

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
	"github.com/skillswap/gdpr-system/shared/telemetry"
	"github.com/skillswap/gdpr-system/user-service/application"
	"go.opentelemetry.io/otel/attribute"
)

// UserHandlerID keys the dedup ledger rows written for this handler.
const UserHandlerID = "user-service-event-handler"

// Deduper runs a function at most once per event within a transaction.
type Deduper interface {
	RunOnce(ctx context.Context, eventID models.ID, fn func(tx *sqlx.Tx) error) (bool, error)
}

// Stager writes events into the outbox inside the caller's transaction
type Stager interface {
	Stage(ctx context.Context, tx *sqlx.Tx, evts ...*events.Event) error
}

// UserEventHandlers handles deletion commands and export requests
// addressed to the user service
type UserEventHandlers struct {
	deleteUserRecord  *application.DeleteUserRecord
	restoreUserRecord *application.RestoreUserRecord
	exportUserData    *application.ExportUserData
	guard             Deduper
	outbox            Stager
	publisher         events.Publisher
}

// NewUserEventHandlers creates new user event handlers
func NewUserEventHandlers(
	deleteUserRecord *application.DeleteUserRecord,
	restoreUserRecord *application.RestoreUserRecord,
	exportUserData *application.ExportUserData,
	guard Deduper,
	outbox Stager,
	publisher events.Publisher,
) *UserEventHandlers {
	return &UserEventHandlers{
		deleteUserRecord:  deleteUserRecord,
		restoreUserRecord: restoreUserRecord,
		exportUserData:    exportUserData,
		guard:             guard,
		outbox:            outbox,
		publisher:         publisher,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *UserEventHandlers) HandlerID() string {
	return UserHandlerID
}

// Topics lists every topic this handler consumes
func (h *UserEventHandlers) Topics() []events.Topic {
	return []events.Topic{
		events.StepCommandTopic(events.ParticipantUserService),
		events.ExportRequestTopic(events.ParticipantUserService),
	}
}

// Handle implements the events.EventHandler interface
func (h *UserEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.Topic {
	case events.StepCommandTopic(events.ParticipantUserService):
		return h.handleStepCommand(ctx, event)
	case events.ExportRequestTopic(events.ParticipantUserService):
		return h.handleExportRequest(ctx, event)
	default:
		// Unknown topic, ignore
		return nil
	}
}

// handleStepCommand runs the deletion step (or its compensation) and
// stages the result in the same transaction that claims the event, so
// the work and the dedup mark commit together.
func (h *UserEventHandlers) handleStepCommand(ctx context.Context, event *events.Event) error {
	var cmd events.StepCommandData
	if err := event.UnmarshalPayload(&cmd); err != nil {
		return errors.Wrap(err, "failed to parse step command")
	}

	executed, err := h.guard.RunOnce(ctx, event.ID, func(tx *sqlx.Tx) error {
		var result events.StepResultData
		var execErr error
		if cmd.Compensate {
			result, execErr = h.restoreUserRecord.Execute(ctx, tx, cmd)
		} else {
			result, execErr = h.deleteUserRecord.Execute(ctx, tx, cmd)
		}
		if execErr != nil {
			return execErr
		}

		telemetry.RecordCounter(ctx, "gdpr_step_commands_total", "Deletion step commands processed",
			1,
			attribute.String("participant", events.ParticipantUserService),
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

func (h *UserEventHandlers) handleExportRequest(ctx context.Context, event *events.Event) error {
	var req events.ExportRequestData
	if err := event.UnmarshalPayload(&req); err != nil {
		return errors.Wrap(err, "failed to parse export request")
	}

	resp, err := h.exportUserData.Execute(ctx, req)
	if err != nil {
		return err
	}

	return h.publisher.Publish(ctx, events.NewExportResponse(resp))
}
