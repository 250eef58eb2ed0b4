package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/skillswap/gdpr-system/message-service/config"
	"github.com/skillswap/gdpr-system/message-service/handlers"
	"github.com/skillswap/gdpr-system/shared/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Starting %s in %s environment on port %s\n", cfg.ServiceName, cfg.Env, cfg.Port)

	// Initialize dependencies
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := config.BuildDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Printf("Error closing dependencies: %v", err)
		}
	}()

	// Start event subscriber
	go func() {
		err := deps.EventSubscriber.Subscribe(ctx, cfg.Broker.RabbitMQ.Queue,
			deps.MessageEventHandlers, deps.MessageEventHandlers.Topics()...)
		if err != nil {
			log.Printf("Error in event subscriber: %v", err)
		}
	}()

	// Start outbox publisher
	go func() {
		if err := deps.OutboxPublisher.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Error in outbox publisher: %v", err)
		}
	}()

	// Setup HTTP router (health and metrics only; this service has no API)
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if deps.Telemetry != nil {
		r.Use(telemetry.Middleware(deps.Telemetry))
	}
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", handlers.NewMetricsHandler())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Printf("Shutting down %s...\n", cfg.ServiceName)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Printf("%s stopped\n", cfg.ServiceName)
}
