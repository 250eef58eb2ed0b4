package infrastructure

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/skillswap/gdpr-system/shared/events"
)

var _ events.Publisher = (*RabbitMQBus)(nil)
var _ events.Subscriber = (*RabbitMQBus)(nil)

// RabbitMQBus implements the event bus over a single topic exchange.
// Routing keys are event topics; consumer groups map to durable queues
// bound with topic patterns, so each event reaches exactly one member
// of every group, at least once. Delivery within one routing key follows
// publish order, which gives the per-saga ordering the orchestrator
// relies on.
type RabbitMQBus struct {
	url      string
	exchange string
	workers  int

	conn   *amqp.Connection
	pubMu  sync.Mutex
	pubCh  *amqp.Channel
	acks   chan amqp.Confirmation
	closed bool

	subMu  sync.Mutex
	subChs []*amqp.Channel
	cancel []context.CancelFunc
}

type RabbitMQOption func(*RabbitMQBus)

func WithConsumerWorkers(n int) RabbitMQOption {
	return func(b *RabbitMQBus) {
		b.workers = n
	}
}

// NewRabbitMQBus dials the broker, declares the exchange and puts the
// publishing channel into confirm mode so Publish can report durable
// append vs. ErrBusUnavailable.
func NewRabbitMQBus(url, exchange string, opts ...RabbitMQOption) (*RabbitMQBus, error) {
	bus := &RabbitMQBus{
		url:      url,
		exchange: exchange,
		workers:  10,
	}
	for _, opt := range opts {
		opt(bus)
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open publishing channel")
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "failed to declare exchange %s", exchange)
	}

	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to enable publisher confirms")
	}

	bus.conn = conn
	bus.pubCh = ch
	bus.acks = ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return bus, nil
}

// Publish durably appends events to the exchange. Any broker error or
// missing confirm surfaces as ErrBusUnavailable so callers (the outbox
// publisher) retry with backoff.
func (b *RabbitMQBus) Publish(ctx context.Context, evts ...*events.Event) error {
	b.pubMu.Lock()
	defer b.pubMu.Unlock()

	for _, event := range evts {
		body, err := event.ToJSON()
		if err != nil {
			return errors.Wrapf(err, "failed to marshal event %s", event.ID)
		}

		err = b.pubCh.PublishWithContext(ctx,
			b.exchange,
			event.Topic.String(),
			false, false,
			amqp.Publishing{
				ContentType:   "application/json",
				DeliveryMode:  amqp.Persistent,
				MessageId:     event.ID.String(),
				CorrelationId: event.SagaID.String(),
				Timestamp:     event.ProducedAt,
				Body:          body,
			},
		)
		if err != nil {
			return errors.Wrapf(events.ErrBusUnavailable, "publish %s: %v", event.ID, err)
		}

		select {
		case confirmation := <-b.acks:
			if !confirmation.Ack {
				return errors.Wrapf(events.ErrBusUnavailable, "broker nacked event %s", event.ID)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// Subscribe binds a durable queue named after the consumer group to the
// given topic patterns and processes deliveries with a worker pool. The
// queue cursor advances only on handler success; failures are nacked
// back for redelivery.
func (b *RabbitMQBus) Subscribe(ctx context.Context, group string, handler events.EventHandler, topics ...events.Topic) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return errors.Wrap(err, "failed to open consumer channel")
	}

	if err := ch.Qos(b.workers*2, 0, false); err != nil {
		return errors.Wrap(err, "failed to set prefetch")
	}

	if _, err := ch.QueueDeclare(group, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "failed to declare queue %s", group)
	}

	for _, topic := range topics {
		if err := ch.QueueBind(group, topic.String(), b.exchange, false, nil); err != nil {
			return errors.Wrapf(err, "failed to bind %s to %s", group, topic)
		}
	}

	deliveries, err := ch.Consume(group, group+"/"+handler.HandlerID(), false, false, false, false, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to consume from %s", group)
	}

	ctx, cancel := context.WithCancel(ctx)

	b.subMu.Lock()
	b.subChs = append(b.subChs, ch)
	b.cancel = append(b.cancel, cancel)
	b.subMu.Unlock()

	for i := 0; i < b.workers; i++ {
		go b.worker(ctx, deliveries, handler)
	}

	return nil
}

func (b *RabbitMQBus) worker(ctx context.Context, deliveries <-chan amqp.Delivery, handler events.EventHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			b.process(ctx, delivery, handler)
		}
	}
}

func (b *RabbitMQBus) process(ctx context.Context, delivery amqp.Delivery, handler events.EventHandler) {
	event, err := events.FromJSON(delivery.Body)
	if err != nil {
		// Malformed payloads never become processable; requeueing
		// them would loop forever.
		log.Printf("rabbitmq: dropping undecodable delivery %s: %v", delivery.MessageId, err)
		_ = delivery.Nack(false, false)
		return
	}

	if err := handler.Handle(ctx, event); err != nil {
		log.Printf("rabbitmq: handler %s failed on event %s, requeueing: %v", handler.HandlerID(), event.ID, err)
		_ = delivery.Nack(false, true)
		time.Sleep(time.Second) // crude damper against hot redelivery loops
		return
	}

	_ = delivery.Ack(false)
}

// Close cancels consumers and tears down the connection
func (b *RabbitMQBus) Close() error {
	b.subMu.Lock()
	for _, cancel := range b.cancel {
		cancel()
	}
	for _, ch := range b.subChs {
		_ = ch.Close()
	}
	b.subMu.Unlock()

	b.pubMu.Lock()
	defer b.pubMu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	if err := b.pubCh.Close(); err != nil {
		return errors.Wrap(err, "failed to close publishing channel")
	}
	return errors.Wrap(b.conn.Close(), "failed to close connection")
}
