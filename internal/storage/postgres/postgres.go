// Package postgres implements the storage.Backend interface using GORM/PostgreSQL
// with the queued background writer of the GORM backend.
package postgres

import (
	"fmt"

	"github.com/gzreplay/gzr/internal/config"
	"github.com/gzreplay/gzr/internal/database"
	"github.com/gzreplay/gzr/internal/storage"
	gormstorage "github.com/gzreplay/gzr/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend connects lazily in Init and then delegates to the GORM backend.
type Backend struct {
	cfg   config.DBConfig
	log   zerolog.Logger
	inner *gormstorage.Backend
}

// New creates a new Postgres storage backend.
func New(cfg config.DBConfig, log zerolog.Logger) *Backend {
	return &Backend{
		cfg: cfg,
		log: log,
	}
}

// Init connects, validates the connection and migrates the schema.
func (b *Backend) Init() error {
	b.log.Debug().Str("host", b.cfg.Host).Str("port", b.cfg.Port).Str("database", b.cfg.Database).
		Msg("Connecting to Postgres DB")

	db, err := database.GetPostgresDB(b.cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to validate connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	inner := gormstorage.New(gormstorage.Dependencies{DB: db, Logger: b.log})
	if err := inner.Init(); err != nil {
		return err
	}
	b.inner = inner
	b.log.Info().Msg("Connected to database")
	return nil
}

// StoreReplay queues item for the background writer.
func (b *Backend) StoreReplay(item *storage.Item) error {
	if b.inner == nil {
		return gormstorage.ErrNotInitialized
	}
	return b.inner.StoreReplay(item)
}

// Close flushes pending replays and closes the connection pool.
func (b *Backend) Close() error {
	if b.inner == nil {
		return nil
	}
	err := b.inner.Close()
	if sqlDB, dbErr := b.inner.DB().DB(); dbErr == nil {
		if cerr := sqlDB.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
