package infrastructure

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
)

var _ events.Subscriber = (*SQSEventSubscriber)(nil)

type sqsMessage struct {
	Message types.Message
	Event   *events.Event
	Err     error
}

// SQSEventSubscriber consumes one consumer group's queue. The queue is
// subscribed to the SNS events topic out of band; this side reads with
// long polling, fans messages out to workers and deletes them only
// after the handler succeeded. Failed messages get a growing visibility
// timeout and come back, which is the redelivery the guard absorbs.
type SQSEventSubscriber struct {
	mux              sync.RWMutex
	inboundMessages  chan *sqsMessage
	outboundMessages chan *sqsMessage
	cancel           context.CancelFunc
	running          atomic.Bool
	options          *sqsSubscriberOptions

	client   *sqs.Client
	queueURL string
	handler  events.EventHandler
	topics   []events.Topic
}

type sqsSubscriberOptions struct {
	workers                    int32
	readers                    int32
	cleaners                   int32
	maxNumberOfMessages        int32
	waitTimeSeconds            int32
	visibilityTimeout          int32
	sleepTimeAfterEmptyReceive time.Duration
	sleepTimeAfterError        time.Duration
	receiveCountRange          int32
	visibilityTimeoutOffset    int32
	maxVisibilityTimeout       int32
}

type SQSSubscriberOption func(*sqsSubscriberOptions)

func WithWorkers(workers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.workers = workers
	}
}

func WithReaders(readers int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.readers = readers
	}
}

func WithVisibilityTimeout(timeout int32) SQSSubscriberOption {
	return func(o *sqsSubscriberOptions) {
		o.visibilityTimeout = timeout
	}
}

func NewSQSEventSubscriber(client *sqs.Client, queueURL string, opts ...SQSSubscriberOption) *SQSEventSubscriber {
	options := &sqsSubscriberOptions{
		workers:                    30,
		readers:                    1,
		cleaners:                   2,
		maxNumberOfMessages:        5,
		waitTimeSeconds:            15,
		visibilityTimeout:          30,
		sleepTimeAfterEmptyReceive: 10 * time.Second,
		sleepTimeAfterError:        20 * time.Second,
		receiveCountRange:          3,
		visibilityTimeoutOffset:    30,
		maxVisibilityTimeout:       900, // 15 minutes
	}

	for _, opt := range opts {
		opt(options)
	}

	return &SQSEventSubscriber{
		client:           client,
		queueURL:         queueURL,
		inboundMessages:  make(chan *sqsMessage, 10),
		outboundMessages: make(chan *sqsMessage, 10),
		options:          options,
	}
}

// NewSQSEventSubscriberFromEnv builds the subscriber with the default
// AWS config chain.
func NewSQSEventSubscriberFromEnv(ctx context.Context, queueURL string, opts ...SQSSubscriberOption) (*SQSEventSubscriber, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}
	return NewSQSEventSubscriber(sqs.NewFromConfig(cfg), queueURL, opts...), nil
}

// Subscribe starts the reader, worker and cleaner pools. The group is
// implied by the queue; topics are filtered client-side because the
// queue receives the whole SNS firehose.
func (s *SQSEventSubscriber) Subscribe(ctx context.Context, _ string, handler events.EventHandler, topics ...events.Topic) error {
	if s.running.Load() {
		return errors.New("subscriber is already running")
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.handler = handler
	s.topics = topics

	for i := 0; i < int(s.options.workers); i++ {
		go s.startWorker(ctx)
	}
	for i := 0; i < int(s.options.readers); i++ {
		go s.startReader(ctx)
	}
	for i := 0; i < int(s.options.cleaners); i++ {
		go s.startCleaner(ctx)
	}

	s.running.Store(true)
	return nil
}

// Close stops the pools
func (s *SQSEventSubscriber) Close() error {
	if !s.running.Load() {
		return nil
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.running.Store(false)
	return nil
}

func (s *SQSEventSubscriber) startWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-s.inboundMessages:
			if message == nil {
				continue
			}
			s.handle(ctx, message)
		}
	}
}

func (s *SQSEventSubscriber) startReader(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := s.read(ctx); err != nil {
				time.Sleep(s.options.sleepTimeAfterError)
			}
		}
	}
}

func (s *SQSEventSubscriber) startCleaner(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-s.outboundMessages:
			if message == nil {
				continue
			}
			if err := s.clean(ctx, message); err != nil {
				continue
			}
		}
	}
}

func (s *SQSEventSubscriber) read(ctx context.Context) error {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: s.options.maxNumberOfMessages,
		WaitTimeSeconds:     s.options.waitTimeSeconds,
		VisibilityTimeout:   s.options.visibilityTimeout,
		AttributeNames: []types.QueueAttributeName{
			"ApproximateReceiveCount",
		},
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to receive message from SQS")
	}

	if len(output.Messages) == 0 {
		time.Sleep(s.options.sleepTimeAfterEmptyReceive)
		return nil
	}

	for _, message := range output.Messages {
		var event *events.Event
		if err := json.Unmarshal([]byte(*message.Body), &event); err != nil {
			continue // skip malformed messages
		}

		if !s.wants(event) {
			// Not for this group; acknowledge without handling.
			select {
			case s.outboundMessages <- &sqsMessage{Message: message, Event: event}:
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		select {
		case s.inboundMessages <- &sqsMessage{Message: message, Event: event}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (s *SQSEventSubscriber) wants(event *events.Event) bool {
	for _, pattern := range s.topics {
		if event.Topic.Matches(pattern) {
			return true
		}
	}
	return false
}

func (s *SQSEventSubscriber) handle(ctx context.Context, message *sqsMessage) {
	s.mux.RLock()
	handler := s.handler
	s.mux.RUnlock()

	if handler == nil {
		message.Err = errors.New("no handler configured")
	} else {
		message.Err = handler.Handle(ctx, message.Event)
	}

	select {
	case s.outboundMessages <- message:
	case <-ctx.Done():
	}
}

// clean deletes handled messages; failed ones get a stretched visibility
// timeout so redelivery backs off as the receive count grows.
func (s *SQSEventSubscriber) clean(ctx context.Context, message *sqsMessage) error {
	if message.Err != nil {
		receiveCount, err := strconv.Atoi(message.Message.Attributes["ApproximateReceiveCount"])
		if err != nil {
			receiveCount = 1
		}

		visibilityTimeout := s.options.visibilityTimeout
		visibilityTimeout += (int32(receiveCount) / s.options.receiveCountRange) * s.options.visibilityTimeoutOffset
		if visibilityTimeout > s.options.maxVisibilityTimeout {
			visibilityTimeout = s.options.maxVisibilityTimeout
		}

		_, err = s.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
			QueueUrl:          &s.queueURL,
			ReceiptHandle:     message.Message.ReceiptHandle,
			VisibilityTimeout: visibilityTimeout,
		})
		return errors.Wrap(err, "failed to extend visibility timeout")
	}

	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &s.queueURL,
		ReceiptHandle: message.Message.ReceiptHandle,
	})
	return errors.Wrap(err, "failed to delete message from SQS")
}
