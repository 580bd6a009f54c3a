/**
 * @description
 * This is the main entry point for the payment-monitor-service. The service
 * periodically evaluates every customer website's payment status against the
 * escalation rule catalog (remind, suspend, disable) and executes the
 * resulting actions against the mailer, the hosting control plane, and the
 * admin event exchange.
 *
 * Key features:
 * - Loads application configuration from environment variables and refuses to
 *   start without the required secrets.
 * - Runs the monitoring pass on a cron schedule and exposes an authenticated
 *   HTTP trigger for manual runs.
 * - Implements graceful shutdown for the HTTP server and the scheduler.
 */
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/hostforge/payment-monitor-service/internal/api"
	"github.com/hostforge/payment-monitor-service/internal/app"
	"github.com/hostforge/payment-monitor-service/internal/config"
	"github.com/hostforge/payment-monitor-service/internal/domain"
	"github.com/hostforge/payment-monitor-service/internal/store"
	"github.com/hostforge/payment-monitor-service/pkg/hostingclient"
	"github.com/hostforge/payment-monitor-service/pkg/mailerclient"
	"github.com/hostforge/payment-monitor-service/pkg/rabbitmq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load .env file for local development.
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	// Load application configuration. Missing required secrets are fatal.
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Establish database connection with connection pool configuration
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = 50
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	// Disable prepared statement caching to prevent conflicts
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	logger.Info("database connection established")

	// Set up the RabbitMQ producer for admin summary events.
	producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer producer.Close()
	logger.Info("RabbitMQ producer connected")

	// Initialize dependencies
	repository := store.NewRepository(dbpool)
	mailer := mailerclient.NewClient(cfg.MailerServiceURL)
	hosting := hostingclient.NewClient(cfg.HostingAPIURL, cfg.HostingAPIKey)
	catalog := domain.NewRuleCatalog(domain.DefaultRules())

	service := app.NewMonitorService(repository, mailer, hosting, producer, catalog, logger, *cfg)
	scheduler := app.NewScheduler(service, logger, *cfg)

	// Start the cron scheduler in the background
	scheduler.Start()
	logger.Info("scheduler started")

	// Set up router and HTTP server.
	handler := api.NewHandler(service, logger)
	router := api.NewRouter(handler, *cfg)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("could not start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal to gracefully shut down
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	stopCtx := scheduler.Stop()
	<-stopCtx.Done() // Wait for any running pass to finish
	logger.Info("service stopped gracefully")
}
