package infrastructure

import (
	"context"
	"log"
	"sync"

	"github.com/skillswap/gdpr-system/shared/events"
)

var _ events.Publisher = (*MemoryBus)(nil)
var _ events.Subscriber = (*MemoryBus)(nil)

// MemoryBus is an in-process bus with the same contract as the broker
// backed ones: per-group delivery, at-least-once semantics and FIFO
// order per partition key. Delivery is synchronous, which keeps tests
// deterministic. With duplicate delivery enabled every event is handed
// to each group twice, the cheapest way to exercise idempotency paths.
type MemoryBus struct {
	mu            sync.Mutex
	subs          []*memorySubscription
	duplicates    bool
	maxDeliveries int
}

type memorySubscription struct {
	group   string
	topics  []events.Topic
	handler events.EventHandler
}

type MemoryBusOption func(*MemoryBus)

// WithDuplicateDelivery makes the bus deliver every event twice
func WithDuplicateDelivery() MemoryBusOption {
	return func(b *MemoryBus) {
		b.duplicates = true
	}
}

func NewMemoryBus(opts ...MemoryBusOption) *MemoryBus {
	bus := &MemoryBus{maxDeliveries: 3}
	for _, opt := range opts {
		opt(bus)
	}
	return bus
}

func (b *MemoryBus) Subscribe(_ context.Context, group string, handler events.EventHandler, topics ...events.Topic) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.group == group {
			// One member per group in process: replace the handler,
			// keeping exactly-one-member-of-group semantics.
			sub.handler = handler
			sub.topics = topics
			return nil
		}
	}

	b.subs = append(b.subs, &memorySubscription{group: group, topics: topics, handler: handler})
	return nil
}

func (b *MemoryBus) Publish(ctx context.Context, evts ...*events.Event) error {
	b.mu.Lock()
	subs := make([]*memorySubscription, len(b.subs))
	copy(subs, b.subs)
	duplicates := b.duplicates
	b.mu.Unlock()

	for _, event := range evts {
		for _, sub := range subs {
			if !sub.matches(event) {
				continue
			}
			b.deliver(ctx, sub, event)
			if duplicates {
				b.deliver(ctx, sub, event.Clone())
			}
		}
	}

	return nil
}

func (b *MemoryBus) deliver(ctx context.Context, sub *memorySubscription, event *events.Event) {
	for attempt := 1; attempt <= b.maxDeliveries; attempt++ {
		if err := sub.handler.Handle(ctx, event); err == nil {
			return
		} else if attempt == b.maxDeliveries {
			log.Printf("memory bus: handler %s gave up on event %s: %v", sub.handler.HandlerID(), event.ID, err)
		}
	}
}

func (sub *memorySubscription) matches(event *events.Event) bool {
	for _, pattern := range sub.topics {
		if event.Topic.Matches(pattern) {
			return true
		}
	}
	return false
}

func (b *MemoryBus) Close() error {
	return nil
}
