// Package backend selects and wires the ledger storage variant. The
// memory and sqlite backends expose the same store contract; only the
// sqlite one carries the AMQP audit stream.
package backend

import (
	"fmt"

	"tally/internal/config"
	"tally/internal/events"
	applog "tally/internal/log"
	"tally/internal/store"
	"tally/internal/store/memory"
	"tally/internal/store/sqlite"
)

// Backend bundles a ledger store with its event publisher and cleanup.
type Backend struct {
	Store   store.LedgerStore
	Events  events.Publisher
	Cleanup func() error
}

// New builds the backend described by cfg.
func New(cfg *config.Config, logger *applog.Logger) (*Backend, error) {
	logger = logger.WithComponent(applog.ComponentBackend)

	switch cfg.DataBackend {
	case "memory":
		logger.Info("Initialized memory backend")
		return &Backend{
			Store:  memory.New(),
			Events: events.NopPublisher{},
		}, nil

	case "sqlite":
		return newSQLiteBackend(cfg, logger)

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}

func newSQLiteBackend(cfg *config.Config, logger *applog.Logger) (*Backend, error) {
	repo, err := sqlite.Open(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	var pub events.Publisher = events.NopPublisher{}
	var amqpClient *events.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The ledger still works without the audit stream.
			logger.Warn("Failed to initialize AMQP client, continuing without audit events",
				applog.FieldError, err)
		} else {
			pub = amqpClient
			logger.Info("Initialized AMQP audit stream",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	logger.Info("Initialized sqlite backend",
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	cleanup := func() error {
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				repo.Close()
				return fmt.Errorf("close amqp: %w", err)
			}
		}
		return repo.Close()
	}

	return &Backend{Store: repo, Events: pub, Cleanup: cleanup}, nil
}
