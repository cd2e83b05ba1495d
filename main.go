package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"teahouse/internal/config"
	"teahouse/internal/logger"
	"teahouse/internal/repositories"
	"teahouse/internal/server"
	"teahouse/internal/services"
	"teahouse/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog.Close()
	slog.SetDefault(log)
	if cfg.Auth.EphemeralSecret {
		log.Warn("JWT_SECRET is not set; using a random secret, issued tokens will not survive a restart")
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		closeLog.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	app, cleanup, err := NewApp(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.AppPort, "store", cfg.Store.Backend)
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	log.Info("server gracefully stopped")
	return nil
}

// NewApp opens the document store, connects to RabbitMQ when enabled and builds
// the HTTP application. cleanup releases everything NewApp opened.
func NewApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*server.App, func(), error) {
	store, err := repositories.OpenDocumentStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s document store: %w", cfg.Store.Backend, err)
	}
	closers := []func() error{store.Close}

	var publisher services.EventPublisher
	if cfg.RabbitMQ.Enabled {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
			Queue:    cfg.RabbitMQ.Queue,
		}, log)
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		closers = append(closers, mq.Close)
		publisher = mq

		if err := mq.ConsumeEvents(rabbitmq.LogEvents(log)); err != nil {
			// publishing still works without the audit consumer
			log.Warn("failed to start event consumer", "error", err)
		}
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("error during cleanup", "error", err)
			}
		}
	}

	app := server.New(server.Options{Config: cfg, Store: store, Publisher: publisher, Logger: log})
	return app, cleanup, nil
}
