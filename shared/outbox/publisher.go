package outbox

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/skillswap/gdpr-system/shared/events"
)

const defaultBatchSize = 50

// Publisher polls unpublished outbox records and pushes them to the bus.
// Bus failures back off exponentially with jitter (base 1s, cap 60s); a
// crash between commit and publish self-heals on the next poll.
type Publisher struct {
	outbox       *Outbox
	bus          events.Publisher
	pollInterval time.Duration
	batchSize    int
}

type PublisherOption func(*Publisher)

func WithPollInterval(d time.Duration) PublisherOption {
	return func(p *Publisher) {
		p.pollInterval = d
	}
}

func WithBatchSize(n int) PublisherOption {
	return func(p *Publisher) {
		p.batchSize = n
	}
}

func NewPublisher(outbox *Outbox, bus events.Publisher, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		outbox:       outbox,
		bus:          bus,
		pollInterval: time.Second,
		batchSize:    defaultBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run blocks until ctx is canceled
func (p *Publisher) Run(ctx context.Context) error {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = time.Second
	retry.MaxInterval = 60 * time.Second
	retry.RandomizationFactor = 1 // full jitter

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := p.Drain(ctx); err != nil {
			sleep := retry.NextBackOff()
			if sleep == backoff.Stop {
				sleep = retry.MaxInterval
			}
			log.Printf("outbox publish failed, backing off %s: %v", sleep, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}
			continue
		}

		retry.Reset()
	}
}

// Drain publishes one batch of unpublished records. Records are marked
// published only after the bus acknowledged them; a crash in between
// causes a duplicate publish, which consumers absorb.
func (p *Publisher) Drain(ctx context.Context) error {
	records, err := p.outbox.FetchUnpublished(ctx, p.batchSize)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	evts := make([]*events.Event, 0, len(records))
	ids := make([]string, 0, len(records))
	for _, record := range records {
		event, err := events.FromJSON(record.Payload)
		if err != nil {
			// A row we cannot decode would wedge the queue forever;
			// mark it published and move on.
			log.Printf("outbox: dropping undecodable record %s: %v", record.ID, err)
			ids = append(ids, record.ID)
			continue
		}
		evts = append(evts, event)
		ids = append(ids, record.ID)
	}

	if len(evts) > 0 {
		if err := p.bus.Publish(ctx, evts...); err != nil {
			return err
		}
	}

	return p.outbox.MarkPublished(ctx, ids...)
}
