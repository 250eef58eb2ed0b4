package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/pkg/errors"
	"github.com/skillswap/gdpr-system/shared/events"
	"golang.org/x/sync/errgroup"
)

var _ events.Publisher = (*SNSEventPublisher)(nil)

const snsMaxBatchSize = 10

// SNSEventPublisher is the cloud bus driver: events go to one SNS topic
// with the event topic and partition key as message attributes, and SQS
// queues subscribed per consumer group filter on them. A publish error
// surfaces as ErrBusUnavailable so the outbox retries it.
type SNSEventPublisher struct {
	client   *sns.Client
	topicArn string
}

func NewSNSEventPublisher(client *sns.Client, topicArn string) *SNSEventPublisher {
	return &SNSEventPublisher{
		client:   client,
		topicArn: topicArn,
	}
}

// NewSNSEventPublisherFromEnv builds the publisher with the default AWS
// config chain (works against LocalStack when AWS_ENDPOINT_URL is set).
func NewSNSEventPublisherFromEnv(ctx context.Context, topicArn string) (*SNSEventPublisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}
	return NewSNSEventPublisher(sns.NewFromConfig(cfg), topicArn), nil
}

// Publish publishes events to SNS in batches of at most ten
func (p *SNSEventPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	gr, ctx := errgroup.WithContext(ctx)
	for _, batch := range splitToChunks(evts, snsMaxBatchSize) {
		batch := batch
		gr.Go(func() error {
			return p.batchPublish(ctx, batch)
		})
	}

	return gr.Wait()
}

func (p *SNSEventPublisher) batchPublish(ctx context.Context, evts []*events.Event) error {
	requests := make([]types.PublishBatchRequestEntry, len(evts))

	for i, event := range evts {
		body, err := json.Marshal(event)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal event %s", event.ID)
		}

		attrs := map[string]types.MessageAttributeValue{
			"topic": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Topic.String()),
			},
			"partition_key": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.PartitionKey()),
			},
		}

		requests[i] = types.PublishBatchRequestEntry{
			Id:                     aws.String(event.ID.String()),
			Message:                aws.String(string(body)),
			MessageAttributes:      attrs,
			MessageGroupId:         aws.String(event.PartitionKey()),
			MessageDeduplicationId: aws.String(event.ID.String()),
		}
	}

	res, err := p.client.PublishBatch(ctx, &sns.PublishBatchInput{
		TopicArn:                   &p.topicArn,
		PublishBatchRequestEntries: requests,
	})
	if err != nil {
		return errors.Wrapf(events.ErrBusUnavailable, "sns publish: %v", err)
	}

	if len(res.Failed) > 0 {
		return errors.Wrapf(events.ErrBusUnavailable, "sns rejected %d of %d events", len(res.Failed), len(evts))
	}

	return nil
}

func splitToChunks[T any](slice []T, chunkSize int) [][]T {
	var chunks [][]T
	for i := 0; i < len(slice); i += chunkSize {
		end := i + chunkSize
		if end > len(slice) {
			end = len(slice)
		}
		chunks = append(chunks, slice[i:end])
	}
	return chunks
}
