package saga

import (
	"time"

	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
)

// Status represents the overall status of a deletion saga.
// Transitions are monotonic: pending -> in_progress -> completed, or
// pending -> in_progress -> compensating -> failed.
type Status string

const (
	StatusPending      Status = "pending"
	StatusInProgress   Status = "in_progress"
	StatusCompleted    Status = "completed"
	StatusCompensating Status = "compensating"
	StatusFailed       Status = "failed"
)

// Terminal reports whether the saga reached a final state
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// StepStatus represents the status of one participant's unit of work
type StepStatus string

const (
	StepNotStarted  StepStatus = "not_started"
	StepSent        StepStatus = "sent"
	StepSucceeded   StepStatus = "succeeded"
	StepFailed      StepStatus = "failed"
	StepCompensated StepStatus = "compensated"
)

// Error codes surfaced in step results and the final failure reason
const (
	ErrorCodeHandlerFailure = "HANDLER_FAILURE"
	ErrorCodeTimeout        = "TIMEOUT_EXCEEDED"
	ErrorCodeIrreversible   = "IRREVERSIBLE_COMPENSATION"
)

var ErrUnknownStep = errors.New("unknown saga step")

// Policy bounds how a saga retries silent or failing participants
type Policy struct {
	MaxAttempts int
	StepTimeout time.Duration
}

// DefaultPolicy matches the orchestration defaults of the platform
var DefaultPolicy = Policy{
	MaxAttempts: 3,
	StepTimeout: 30 * time.Second,
}

// Step is one participant's unit of work within a saga
type Step struct {
	ID           string     `json:"id"`
	Participant  string     `json:"participant"`
	Status       StepStatus `json:"status"`
	Attempts     int        `json:"attempts"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
	Irreversible bool       `json:"irreversible,omitempty"`
}

// DeletionSaga is the durable record of one user's deletion request.
// It is mutated only by the orchestrator; participants see commands and
// emit results, never the saga itself.
type DeletionSaga struct {
	ID             models.ID
	UserID         models.ID
	UserExternalID string
	DeletionType   events.DeletionType
	Status         Status
	Reason         string
	Steps          []*Step
	Timestamps     models.Timestamps
	Version        models.Version

	pending []*events.Event
}

// NewDeletionSaga creates a pending saga with one not-started step per
// participant. Step IDs equal participant names: stable across re-sends.
func NewDeletionSaga(userID models.ID, userExternalID string, deletionType events.DeletionType, participants []string) *DeletionSaga {
	steps := make([]*Step, 0, len(participants))
	for _, p := range participants {
		steps = append(steps, &Step{
			ID:          p,
			Participant: p,
			Status:      StepNotStarted,
		})
	}

	return &DeletionSaga{
		ID:             models.GenerateUUID(),
		UserID:         userID,
		UserExternalID: userExternalID,
		DeletionType:   deletionType,
		Status:         StatusPending,
		Steps:          steps,
		Timestamps:     models.NewTimestamps(),
		Version:        models.NewVersion(),
	}
}

// Events returns the domain events recorded since the last clear
func (s *DeletionSaga) Events() []*events.Event {
	return s.pending
}

// ClearEvents drops recorded events after they were staged
func (s *DeletionSaga) ClearEvents() {
	s.pending = nil
}

func (s *DeletionSaga) recordEvent(e *events.Event) {
	s.pending = append(s.pending, e)
}

// NextDeadline returns the earliest deadline among sent steps, used by
// the store so the timeout sweeper can query without unpacking steps.
func (s *DeletionSaga) NextDeadline() *time.Time {
	var min *time.Time
	for _, step := range s.Steps {
		if step.Status != StepSent || step.Deadline == nil {
			continue
		}
		if min == nil || step.Deadline.Before(*min) {
			d := *step.Deadline
			min = &d
		}
	}
	return min
}

func (s *DeletionSaga) step(id string) *Step {
	for _, step := range s.Steps {
		if step.ID == id {
			return step
		}
	}
	return nil
}

func (s *DeletionSaga) touch() {
	s.Timestamps = s.Timestamps.Update()
	s.Version = s.Version.Update()
}

// Begin moves the saga from pending to in_progress and records the first
// command for every step.
func (s *DeletionSaga) Begin(policy Policy) error {
	if s.Status != StatusPending {
		return errors.Errorf("saga %s cannot begin from status %s", s.ID, s.Status)
	}

	s.Status = StatusInProgress
	for _, step := range s.Steps {
		s.sendStep(step, policy)
	}
	s.touch()

	return nil
}

// sendStep marks a step sent and records its command event. The command
// event ID is deterministic, so a re-send is absorbed by the participant's
// dedup ledger if the previous delivery already executed.
func (s *DeletionSaga) sendStep(step *Step, policy Policy) {
	step.Status = StepSent
	step.Attempts++
	deadline := time.Now().Add(policy.StepTimeout)
	step.Deadline = &deadline

	s.recordEvent(events.NewStepCommand(step.Participant, events.StepCommandData{
		SagaID:         s.ID,
		StepID:         step.ID,
		UserID:         s.UserID,
		UserExternalID: s.UserExternalID,
		DeletionType:   s.DeletionType,
		RequestedAt:    time.Now(),
	}))
}

func (s *DeletionSaga) sendCompensation(step *Step) {
	s.recordEvent(events.NewStepCommand(step.Participant, events.StepCommandData{
		SagaID:         s.ID,
		StepID:         step.ID,
		UserID:         s.UserID,
		UserExternalID: s.UserExternalID,
		DeletionType:   s.DeletionType,
		Compensate:     true,
		RequestedAt:    time.Now(),
	}))
}

// ApplyResult feeds one step result into the state machine. Results for
// terminal sagas and duplicates for already-settled steps are absorbed
// without a transition.
func (s *DeletionSaga) ApplyResult(data events.StepResultData, policy Policy) error {
	if s.Status.Terminal() {
		return nil
	}

	step := s.step(data.StepID)
	if step == nil {
		return errors.Wrapf(ErrUnknownStep, "saga %s step %q", s.ID, data.StepID)
	}

	switch {
	case data.Compensated:
		s.applyCompensated(step, data)
	case data.Success:
		s.applySucceeded(step)
	default:
		s.applyFailed(step, data.ErrorCode, data.ErrorMessage, policy)
	}

	return nil
}

func (s *DeletionSaga) applySucceeded(step *Step) {
	if step.Status == StepSucceeded || step.Status == StepCompensated {
		return
	}

	step.Status = StepSucceeded
	step.Deadline = nil
	step.LastError = ""

	if s.Status == StatusCompensating {
		// A step we gave up on succeeded after all; it now needs
		// compensating like the rest.
		s.sendCompensation(step)
		s.touch()
		return
	}

	for _, other := range s.Steps {
		if other.Status != StepSucceeded {
			s.touch()
			return
		}
	}

	s.Status = StatusCompleted
	s.recordEvent(events.NewSagaCompleted(events.SagaCompletedData{
		SagaID:      s.ID,
		UserID:      s.UserID,
		CompletedAt: time.Now(),
	}))
	s.touch()
}

func (s *DeletionSaga) applyFailed(step *Step, code, message string, policy Policy) {
	if step.Status == StepSucceeded || step.Status == StepCompensated {
		return
	}

	step.LastError = message
	if step.LastError == "" {
		step.LastError = code
	}

	if s.Status == StatusCompensating {
		// No retries once the saga is unwinding; settle the step and
		// check whether compensation already drained.
		step.Status = StepFailed
		step.Deadline = nil
		for _, other := range s.Steps {
			if other.Status == StepSucceeded {
				s.touch()
				return
			}
		}
		s.fail()
		return
	}

	if step.Attempts < policy.MaxAttempts {
		s.sendStep(step, policy)
		s.touch()
		return
	}

	step.Status = StepFailed
	step.Deadline = nil
	s.compensate(code, message)
}

// compensate moves the saga into compensation, sending a compensating
// command to every succeeded step. With nothing to undo it falls through
// to failed immediately.
func (s *DeletionSaga) compensate(code, message string) {
	s.Status = StatusCompensating
	if s.Reason == "" {
		s.Reason = code
		if message != "" {
			s.Reason = code + ": " + message
		}
	}

	compensating := false
	for _, step := range s.Steps {
		if step.Status == StepSucceeded {
			s.sendCompensation(step)
			compensating = true
		}
	}

	if !compensating {
		s.fail()
		return
	}
	s.touch()
}

func (s *DeletionSaga) applyCompensated(step *Step, data events.StepResultData) {
	if step.Status != StepSucceeded {
		return
	}

	step.Status = StepCompensated
	step.Irreversible = data.Irreversible

	for _, other := range s.Steps {
		if other.Status == StepSucceeded {
			s.touch()
			return
		}
	}

	if s.Status == StatusCompensating {
		s.fail()
	}
}

func (s *DeletionSaga) fail() {
	irreversible := false
	for _, step := range s.Steps {
		if step.Irreversible {
			irreversible = true
			break
		}
	}

	reason := s.Reason
	if irreversible {
		reason = ErrorCodeIrreversible + ": " + reason
	}

	s.Status = StatusFailed
	s.Reason = reason
	s.recordEvent(events.NewSagaFailed(events.SagaFailedData{
		SagaID:       s.ID,
		UserID:       s.UserID,
		Reason:       reason,
		Irreversible: irreversible,
		FailedAt:     time.Now(),
	}))
	s.touch()
}

// ExpireDeadlines treats every sent step whose deadline elapsed as an
// implicit failure, feeding the regular retry/compensation path. Returns
// true if anything changed.
func (s *DeletionSaga) ExpireDeadlines(now time.Time, policy Policy) bool {
	if s.Status.Terminal() {
		return false
	}

	changed := false
	for _, step := range s.Steps {
		if step.Status != StepSent || step.Deadline == nil || step.Deadline.After(now) {
			continue
		}
		changed = true
		s.applyFailed(step, ErrorCodeTimeout, "no result before deadline", policy)
		if s.Status.Terminal() {
			break
		}
	}

	return changed
}
