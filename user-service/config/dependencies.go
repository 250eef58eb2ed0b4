package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/skillswap/gdpr-system/shared/events"
	"github.com/skillswap/gdpr-system/shared/idempotency"
	sharedinfra "github.com/skillswap/gdpr-system/shared/infrastructure"
	"github.com/skillswap/gdpr-system/shared/outbox"
	"github.com/skillswap/gdpr-system/shared/telemetry"
	"github.com/skillswap/gdpr-system/user-service/application"
	"github.com/skillswap/gdpr-system/user-service/handlers"
	"github.com/skillswap/gdpr-system/user-service/infrastructure"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	UserRepository *infrastructure.PostgresUserRepository

	// Use Cases
	DeleteUserRecord  *application.DeleteUserRecord
	RestoreUserRecord *application.RestoreUserRecord
	ExportUserData    *application.ExportUserData

	// Event Handlers
	UserEventHandlers *handlers.UserEventHandlers

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
	guard := idempotency.NewGuard(db, handlers.UserHandlerID)

	// Initialize repositories
	deps.UserRepository = infrastructure.NewPostgresUserRepository(db)

	// Initialize use cases
	deps.DeleteUserRecord = application.NewDeleteUserRecord(deps.UserRepository)
	deps.RestoreUserRecord = application.NewRestoreUserRecord(deps.UserRepository)
	deps.ExportUserData = application.NewExportUserData(deps.UserRepository)

	// Initialize handlers
	deps.UserEventHandlers = handlers.NewUserEventHandlers(
		deps.DeleteUserRecord,
		deps.RestoreUserRecord,
		deps.ExportUserData,
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
