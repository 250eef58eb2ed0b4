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
	"github.com/skillswap/gdpr-system/gateway/config"
	"github.com/skillswap/gdpr-system/gateway/handlers"
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
			deps.GatewayEventHandlers, deps.GatewayEventHandlers.Topics()...)
		if err != nil {
			log.Printf("Error in event subscriber: %v", err)
		}
	}()

	// Start outbox publisher and timeout sweeper
	go func() {
		if err := deps.OutboxPublisher.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Error in outbox publisher: %v", err)
		}
	}()
	go func() {
		if err := deps.SweepTimeouts.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Error in timeout sweeper: %v", err)
		}
	}()
	go deps.RateLimiter.Run(ctx)

	// Setup HTTP router
	router := setupRouter(deps)

	// Setup and start HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
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

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Printf("%s stopped\n", cfg.ServiceName)
}

func setupRouter(deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Telemetry middleware (inject telemetry into context)
	if deps.Telemetry != nil {
		r.Use(telemetry.Middleware(deps.Telemetry))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", handlers.NewMetricsHandler())

	// Register GDPR routes
	deps.GDPRHandlers.RegisterRoutes(r)

	return r
}
