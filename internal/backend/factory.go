// Package backend assembles the storage and change-feed clients the
// application runs on, based on configuration.
package backend

import (
	"fmt"
	"log/slog"

	"fintrack/internal/config"
	"fintrack/internal/events"
	"fintrack/internal/kv"
)

// Result is an assembled backend: the key-value store every component
// reads through, an optional change-feed client, and a cleanup hook.
type Result struct {
	Store   kv.Store
	Feed    *events.Client
	Cleanup func() error
}

// Factory builds backends.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateBackend builds the store and feed described by cfg.
func (f *Factory) CreateBackend(cfg *config.Config) (*Result, error) {
	store, err := f.createStore(cfg)
	if err != nil {
		return nil, err
	}

	// The feed is optional: a missing broker downgrades to no feed
	// rather than failing startup.
	var feed *events.Client
	if cfg.AMQPURL != "" {
		feed, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("failed to initialize change feed, continuing without it", "error", err)
			feed = nil
		} else {
			f.logger.Info("initialized change feed",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	cleanup := func() error {
		if err := feed.Close(); err != nil {
			f.logger.Warn("close change feed", "error", err)
		}
		return store.Close()
	}

	return &Result{Store: store, Feed: feed, Cleanup: cleanup}, nil
}

func (f *Factory) createStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		store, err := kv.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return store, nil
	case "memory":
		f.logger.Info("initialized memory backend")
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
