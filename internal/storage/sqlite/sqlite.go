// Package sqlitestorage implements the storage.Backend interface using an in-memory
// SQLite database that is written to disk via VACUUM INTO when the backend closes.
// It wraps the GORM backend; the only SQLite-specific concerns are creating the
// in-memory DB and the final dump.
package sqlitestorage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gzreplay/gzr/internal/config"
	"github.com/gzreplay/gzr/internal/database"
	gormstorage "github.com/gzreplay/gzr/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	cfg config.SQLiteConfig
	log zerolog.Logger
}

// New creates a new SQLite storage backend. An empty cfg.Path keeps the
// database in memory only.
func New(cfg config.SQLiteConfig, log zerolog.Logger) (*Backend, error) {
	db, err := database.GetSqliteDB("")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:     db,
			Logger: log,
		}),
		cfg: cfg,
		log: log,
	}, nil
}

// Close flushes the embedded GORM backend and dumps the database to cfg.Path.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	if b.cfg.Path == "" {
		return nil
	}

	if dir := filepath.Dir(b.cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := database.DumpMemoryDBToDisk(b.DB(), b.cfg.Path, b.log); err != nil {
		return err
	}
	b.log.Info().Str("path", b.cfg.Path).Int64("replays", b.Stored()).Msg("SQLite database written")
	return nil
}
