// Package memory keeps decoded replays in memory and exports each one to a
// JSON file.
package memory

import (
	"fmt"
	"os"
	"sync"

	"github.com/gzreplay/gzr/internal/config"
	"github.com/gzreplay/gzr/internal/storage"
	"github.com/rs/zerolog"
)

// Backend stores replay summaries in memory and exports full replays to JSON
type Backend struct {
	cfg config.MemoryConfig
	log zerolog.Logger

	mu             sync.RWMutex
	exported       []string
	lastExportPath string
}

// New creates a new memory backend
func New(cfg config.MemoryConfig, log zerolog.Logger) *Backend {
	return &Backend{
		cfg: cfg,
		log: log,
	}
}

// Init validates the codec and creates the output directory
func (b *Backend) Init() error {
	switch b.cfg.Codec {
	case "", CodecGzip, CodecZstd:
	default:
		return fmt.Errorf("unknown export codec: %s", b.cfg.Codec)
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StoreReplay exports item to its own file
func (b *Backend) StoreReplay(item *storage.Item) error {
	path, err := b.exportJSON(item)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.exported = append(b.exported, path)
	b.lastExportPath = path
	b.mu.Unlock()

	b.log.Info().Str("path", path).Str("source", item.Source).
		Int("events", len(item.Replay.Events)).Msg("Replay exported")
	return nil
}

// LastExportPath returns the path of the most recent export
func (b *Backend) LastExportPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// ExportedPaths returns every file written so far, in write order
func (b *Backend) ExportedPaths() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.exported))
	copy(out, b.exported)
	return out
}
