package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/skillswap/gdpr-system/message-service/application"
	"github.com/skillswap/gdpr-system/message-service/handlers"
	"github.com/skillswap/gdpr-system/message-service/infrastructure"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/idempotency"
	sharedinfra "github.com/skillswap/gdpr-system/shared/infrastructure"
	"github.com/skillswap/gdpr-system/shared/outbox"
	"github.com/skillswap/gdpr-system/shared/telemetry"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	MessageRepository *infrastructure.PostgresMessageRepository

	// Use Cases
	AnonymizeMessages  *application.AnonymizeMessages
	CompensateMessages *application.CompensateMessages
	ExportMessageData  *application.ExportMessageData

	// Event Handlers
	MessageEventHandlers *handlers.MessageEventHandlers

	// Infrastructure
	EventPublisher  events.Publisher
	EventSubscriber events.Subscriber
	OutboxPublisher *outbox.Publisher

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()

	busCloser interface{ Close() error }
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		tel, telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:    config.ServiceName,
			ServiceVersion: "1.0.0",
			OTLPEndpoint:   config.Telemetry.OTLPEndpoint,
		})
		if err != nil {
			log.Printf("Failed to initialize telemetry: %v", err)
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	deps.DB = db

	// Initialize event bus
	publisher, subscriber, closer, err := buildBus(ctx, config)
	if err != nil {
		db.Close()
		return nil, err
	}
	deps.EventPublisher = publisher
	deps.EventSubscriber = subscriber
	deps.busCloser = closer

	// Initialize outbox and dedup guard
	ob := outbox.NewOutbox(db)
	deps.OutboxPublisher = outbox.NewPublisher(ob, publisher,
		outbox.WithPollInterval(config.Outbox.PollInterval))
	guard := idempotency.NewGuard(db, handlers.MessageHandlerID)

	// Initialize repositories
	deps.MessageRepository = infrastructure.NewPostgresMessageRepository(db)

	// Initialize use cases
	deps.AnonymizeMessages = application.NewAnonymizeMessages(deps.MessageRepository)
	deps.CompensateMessages = application.NewCompensateMessages()
	deps.ExportMessageData = application.NewExportMessageData(deps.MessageRepository)

	// Initialize handlers
	deps.MessageEventHandlers = handlers.NewMessageEventHandlers(
		deps.AnonymizeMessages,
		deps.CompensateMessages,
		deps.ExportMessageData,
		guard,
		ob,
		publisher,
	)

	return deps, nil
}

func buildBus(ctx context.Context, config *Config) (events.Publisher, events.Subscriber, interface{ Close() error }, error) {
	switch config.Broker.Driver {
	case "aws":
		publisher, err := sharedinfra.NewSNSEventPublisherFromEnv(ctx, config.Broker.AWS.SNSTopicArn)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create SNS publisher: %w", err)
		}
		subscriber, err := sharedinfra.NewSQSEventSubscriberFromEnv(ctx, config.Broker.AWS.SQSQueueURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
		}
		return publisher, subscriber, subscriber, nil
	default:
		bus, err := sharedinfra.NewRabbitMQBus(config.Broker.RabbitMQ.URL, config.Broker.RabbitMQ.Exchange)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create RabbitMQ bus: %w", err)
		}
		return bus, bus, bus, nil
	}
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.busCloser != nil {
		if err := d.busCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
