package events

import (
	"encoding/json"
	"time"

	"github.com/skillswap/gdpr-system/shared/models"
)

// Participant names as they appear in topic suffixes and saga steps.
const (
	ParticipantUserService    = "user-service"
	ParticipantMessageService = "message-service"
)

// Participants lists every deletion saga participant in step order.
var Participants = []string{ParticipantUserService, ParticipantMessageService}

// Deletion saga topics
const (
	SagaCompletedTopic Topic = "deletion.saga.completed"
	SagaFailedTopic    Topic = "deletion.saga.failed"
)

// StepCommandTopic returns the command topic for a participant
func StepCommandTopic(participant string) Topic {
	return Topic("deletion.step.command." + participant)
}

// StepResultTopic returns the result topic for a participant
func StepResultTopic(participant string) Topic {
	return Topic("deletion.step.result." + participant)
}

// StepResultPattern matches the result topic of any participant.
const StepResultPattern Topic = "deletion.step.result.*"

// GDPR export topics
const (
	ExportResponseTopic Topic = "gdpr.export.response"
)

// ExportRequestTopic returns the export request topic for a participant
func ExportRequestTopic(participant string) Topic {
	return Topic("gdpr.export.request." + participant)
}

// DeletionType selects between hard deletion and anonymization. What
// each participant does with it is the participant's contract.
type DeletionType string

const (
	DeletionTypeFull      DeletionType = "FULL"
	DeletionTypeAnonymize DeletionType = "ANONYMIZE"
)

// StepCommandData instructs a participant to run (or compensate) its
// deletion step.
type StepCommandData struct {
	SagaID         models.ID    `json:"saga_id"`
	StepID         string       `json:"step_id"`
	UserID         models.ID    `json:"user_id"`
	UserExternalID string       `json:"user_external_id"`
	DeletionType   DeletionType `json:"deletion_type"`
	Compensate     bool         `json:"compensate"`
	RequestedAt    time.Time    `json:"requested_at"`
}

// StepResultData reports the outcome of a participant's step.
type StepResultData struct {
	SagaID       models.ID `json:"saga_id"`
	StepID       string    `json:"step_id"`
	Participant  string    `json:"participant"`
	Success      bool      `json:"success"`
	Compensated  bool      `json:"compensated"`
	Irreversible bool      `json:"irreversible,omitempty"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CompletedAt  time.Time `json:"completed_at"`
}

// SagaCompletedData announces a fully successful deletion.
type SagaCompletedData struct {
	SagaID      models.ID `json:"saga_id"`
	UserID      models.ID `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// SagaFailedData announces a deletion that could not complete.
type SagaFailedData struct {
	SagaID       models.ID `json:"saga_id"`
	UserID       models.ID `json:"user_id"`
	Reason       string    `json:"reason"`
	Irreversible bool      `json:"irreversible,omitempty"`
	FailedAt     time.Time `json:"failed_at"`
}

// ExportRequestData asks a participant to export a user's data.
type ExportRequestData struct {
	CorrelationID  models.ID `json:"correlation_id"`
	UserID         models.ID `json:"user_id"`
	UserExternalID string    `json:"user_external_id"`
	RequestedAt    time.Time `json:"requested_at"`
}

// ExportResponseData carries one participant's export reply.
type ExportResponseData struct {
	CorrelationID models.ID       `json:"correlation_id"`
	ServiceName   string          `json:"service_name"`
	UserID        models.ID       `json:"user_id"`
	Success       bool            `json:"success"`
	Data          json.RawMessage `json:"data,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	ExportedAt    time.Time       `json:"exported_at"`
}

// NewStepCommand builds a step command event. The event ID is derived
// from the saga and step so retried sends dedup on the participant side;
// compensation commands get their own stable ID.
func NewStepCommand(participant string, data StepCommandData) *Event {
	name := "command:" + data.StepID
	if data.Compensate {
		name = "compensate:" + data.StepID
	}
	return NewEvent(data.UserID, StepCommandTopic(participant), data).
		WithID(models.DeterministicID(data.SagaID, name)).
		WithSaga(data.SagaID, data.StepID)
}

// NewStepResult builds a step result event.
func NewStepResult(data StepResultData) *Event {
	return NewEvent(data.SagaID, StepResultTopic(data.Participant), data).
		WithSaga(data.SagaID, data.StepID)
}

// NewSagaCompleted builds the downstream completion notification.
func NewSagaCompleted(data SagaCompletedData) *Event {
	return NewEvent(data.UserID, SagaCompletedTopic, data).
		WithID(models.DeterministicID(data.SagaID, "saga-completed")).
		WithSaga(data.SagaID, "")
}

// NewSagaFailed builds the downstream failure notification.
func NewSagaFailed(data SagaFailedData) *Event {
	return NewEvent(data.UserID, SagaFailedTopic, data).
		WithID(models.DeterministicID(data.SagaID, "saga-failed")).
		WithSaga(data.SagaID, "")
}

// NewExportRequest builds an export fan-out request for a participant.
func NewExportRequest(participant string, data ExportRequestData) *Event {
	return NewEvent(data.UserID, ExportRequestTopic(participant), data).
		WithSaga(data.CorrelationID, "")
}

// NewExportResponse builds a participant's export reply.
func NewExportResponse(data ExportResponseData) *Event {
	return NewEvent(data.UserID, ExportResponseTopic, data).
		WithSaga(data.CorrelationID, "")
}
