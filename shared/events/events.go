package events

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/skillswap/gdpr-system/shared/models"
)

var (
	ErrInvalidTopic    = errors.New("invalid topic")
	ErrInvalidReceiver = errors.New("receiver should be a pointer")

	// ErrBusUnavailable indicates a transient broker failure. Callers are
	// expected to retry; the outbox publisher does so with backoff.
	ErrBusUnavailable = errors.New("event bus unavailable")
)

// Topic represents an event topic with pattern matching support.
// Patterns use "*" to match a single segment and "#" to match any suffix.
type Topic string

func NewTopic(topic string) (Topic, error) {
	if topic == "" {
		return "", ErrInvalidTopic
	}
	return Topic(topic), nil
}

func (t Topic) String() string {
	return string(t)
}

func (t Topic) Matches(pattern Topic) bool {
	return matchPattern(
		strings.Split(pattern.String(), "."),
		strings.Split(t.String(), "."),
	)
}

func matchPattern(patternParts, topicParts []string) bool {
	if len(patternParts) > 0 && patternParts[len(patternParts)-1] == "#" {
		head := patternParts[:len(patternParts)-1]
		if len(topicParts) < len(head) {
			return false
		}
		return matchPattern(head, topicParts[:len(head)])
	}

	if len(patternParts) != len(topicParts) {
		return false
	}

	if len(patternParts) == 0 {
		return true
	}

	if patternParts[0] == "*" || patternParts[0] == topicParts[0] {
		return matchPattern(patternParts[1:], topicParts[1:])
	}

	return false
}

// Metadata represents event metadata
type Metadata map[string]string

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Metadata) Set(key string, value string) {
	if m == nil {
		return
	}
	m[key] = value
}

func (m Metadata) Clone() Metadata {
	clone := Metadata{}
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Event represents an immutable message on the bus. SagaID correlates all
// events belonging to one deletion saga and doubles as the partition key:
// everything published for one saga routes through the same ordering domain.
type Event struct {
	ID          models.ID   `json:"id"`
	AggregateID models.ID   `json:"aggregate_id"`
	Topic       Topic       `json:"topic"`
	SagaID      models.ID   `json:"saga_id,omitempty"`
	StepID      string      `json:"step_id,omitempty"`
	Data        interface{} `json:"data"`
	Metadata    Metadata    `json:"metadata"`
	ProducedAt  time.Time   `json:"produced_at"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// Subscriber delivers each matching event to exactly one member of a
// consumer group, at least once. The cursor advances only after the
// handler returns nil; a failed handler causes redelivery.
type Subscriber interface {
	Subscribe(ctx context.Context, group string, handler EventHandler, topics ...Topic) error
	Close() error
}

// EventHandler handles domain events
type EventHandler interface {
	HandlerID() string
	Handle(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a function to the EventHandler interface
type EventHandlerFunc struct {
	id string
	fn func(ctx context.Context, event *Event) error
}

func NewEventHandlerFunc(id string, fn func(ctx context.Context, event *Event) error) *EventHandlerFunc {
	return &EventHandlerFunc{id: id, fn: fn}
}

func (h *EventHandlerFunc) HandlerID() string {
	return h.id
}

func (h *EventHandlerFunc) Handle(ctx context.Context, event *Event) error {
	return h.fn(ctx, event)
}

// NewEvent creates a new domain event
func NewEvent(aggregateID models.ID, topic Topic, data interface{}) *Event {
	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       topic,
		Data:        data,
		Metadata:    make(Metadata),
		ProducedAt:  time.Now(),
	}
}

// WithID overrides the generated event ID. Commands use deterministic IDs
// so re-sends collapse on the consumer's dedup ledger.
func (e *Event) WithID(id models.ID) *Event {
	e.ID = id
	return e
}

// WithSaga sets the saga correlation and step identifiers
func (e *Event) WithSaga(sagaID models.ID, stepID string) *Event {
	e.SagaID = sagaID
	e.StepID = stepID
	return e
}

// WithMetadata adds metadata
func (e *Event) WithMetadata(key string, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata.Set(key, value)
	return e
}

// PartitionKey returns the key events of one saga share for ordering.
// Events outside any saga fall back to the aggregate ID.
func (e *Event) PartitionKey() string {
	if !e.SagaID.IsZero() {
		return e.SagaID.String()
	}
	return e.AggregateID.String()
}

// ToJSON converts event to JSON
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON creates event from JSON
func FromJSON(data []byte) (*Event, error) {
	var event Event
	err := json.Unmarshal(data, &event)
	return &event, err
}

// MarshalPayload marshals the event payload
func (e *Event) MarshalPayload() (json.RawMessage, error) {
	if b, ok := e.Data.([]byte); ok {
		return b, nil
	}

	if b, ok := e.Data.(json.RawMessage); ok {
		return b, nil
	}

	return json.Marshal(e.Data)
}

// UnmarshalPayload unmarshals the event payload into the given receiver.
// The payload may still be the concrete struct the producer attached (in
// process) or raw JSON after a round trip over the wire.
func (e *Event) UnmarshalPayload(v interface{}) error {
	vValue := reflect.ValueOf(v)
	if vValue.Kind() != reflect.Ptr {
		return ErrInvalidReceiver
	}

	vValue = vValue.Elem()
	payloadValue := reflect.ValueOf(e.Data)
	if payloadValue.IsValid() && vValue.Type() == payloadValue.Type() {
		vValue.Set(payloadValue)
		return nil
	}

	raw, err := e.MarshalPayload()
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, v)
}

// Clone creates a copy of the event
func (e *Event) Clone() *Event {
	return &Event{
		ID:          e.ID,
		AggregateID: e.AggregateID,
		Topic:       e.Topic,
		SagaID:      e.SagaID,
		StepID:      e.StepID,
		Data:        e.Data,
		Metadata:    e.Metadata.Clone(),
		ProducedAt:  e.ProducedAt,
	}
}
