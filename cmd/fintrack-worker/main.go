// fintrack-worker consumes record-change messages and keeps per-user
// JSON snapshots of the financial documents on disk.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/events"
	applog "fintrack/internal/log"
	"fintrack/internal/snapshot"
)

func main() {
	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger.Logger).CreateBackend(cfg)
	if err != nil {
		logger.Error("failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("backend cleanup", "error", err)
		}
	}()
	if result.Feed == nil {
		logger.Error("change feed unavailable, nothing to consume")
		os.Exit(1)
	}

	writer, err := snapshot.NewWriter(cfg.SnapshotDir, result.Store)
	if err != nil {
		logger.Error("failed to initialize snapshot writer", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting snapshot worker",
		"queue", cfg.AMQPQueue,
		"snapshot_dir", cfg.SnapshotDir)

	err = result.Feed.Consume(ctx, func(msg *events.RecordChange) error {
		return writer.HandleChange(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped gracefully")
}
