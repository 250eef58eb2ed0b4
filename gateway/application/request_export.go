package application

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/models"
)

// AggregatedExport is everything the platform knows about a user,
// collected from every participant. Errors holds per-service failures,
// including a timeout entry when not everybody answered in time.
type AggregatedExport struct {
	CorrelationID models.ID                  `json:"correlation_id"`
	UserID        models.ID                  `json:"user_id"`
	GeneratedAt   time.Time                  `json:"generated_at"`
	Services      map[string]json.RawMessage `json:"services"`
	Errors        map[string]string          `json:"errors,omitempty"`
}

// RequestExport fans an export request out to every participant and
// aggregates the replies. Unlike deletion this is a read: nothing is
// persisted, requests publish directly and an unanswered fan-out just
// returns partial data.
type RequestExport struct {
	publisher    events.Publisher
	participants []string
	timeout      time.Duration

	mu      sync.Mutex
	pending map[models.ID]*exportCollector
}

type exportCollector struct {
	expected int
	services map[string]json.RawMessage
	errors   map[string]string
	done     chan struct{}
	closed   bool
}

func NewRequestExport(publisher events.Publisher, participants []string, timeout time.Duration) *RequestExport {
	return &RequestExport{
		publisher:    publisher,
		participants: participants,
		timeout:      timeout,
		pending:      make(map[models.ID]*exportCollector),
	}
}

func (uc *RequestExport) Execute(ctx context.Context, userID models.ID, userExternalID string) (*AggregatedExport, error) {
	if userID.IsZero() || userExternalID == "" {
		return nil, errors.New("user identity is required")
	}

	correlationID := models.GenerateUUID()
	collector := &exportCollector{
		expected: len(uc.participants),
		services: make(map[string]json.RawMessage),
		errors:   make(map[string]string),
		done:     make(chan struct{}),
	}

	uc.mu.Lock()
	uc.pending[correlationID] = collector
	uc.mu.Unlock()
	defer func() {
		uc.mu.Lock()
		delete(uc.pending, correlationID)
		uc.mu.Unlock()
	}()

	data := events.ExportRequestData{
		CorrelationID:  correlationID,
		UserID:         userID,
		UserExternalID: userExternalID,
		RequestedAt:    time.Now(),
	}

	evts := make([]*events.Event, 0, len(uc.participants))
	for _, participant := range uc.participants {
		evts = append(evts, events.NewExportRequest(participant, data))
	}

	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		return nil, errors.Wrap(err, "failed to publish export requests")
	}

	select {
	case <-collector.done:
	case <-time.After(uc.timeout):
		uc.mu.Lock()
		collector.errors["timeout"] = "not all services responded within timeout, partial data returned"
		uc.mu.Unlock()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	return &AggregatedExport{
		CorrelationID: correlationID,
		UserID:        userID,
		GeneratedAt:   time.Now(),
		Services:      collector.services,
		Errors:        collector.errors,
	}, nil
}

// HandleResponse feeds one participant reply into its pending collector.
// Replies for unknown correlations (late, or another gateway instance's)
// are logged and dropped.
func (uc *RequestExport) HandleResponse(ctx context.Context, event *events.Event) error {
	var data events.ExportResponseData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to parse export response")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	collector, ok := uc.pending[data.CorrelationID]
	if !ok {
		log.Printf("no pending export for correlation %s", data.CorrelationID)
		return nil
	}

	if data.Success {
		collector.services[data.ServiceName] = data.Data
	} else {
		collector.errors[data.ServiceName] = data.ErrorMessage
	}

	if !collector.closed && len(collector.services)+len(collector.errors) >= collector.expected {
		collector.closed = true
		close(collector.done)
	}

	return nil
}
