package storage

import (
	"github.com/google/uuid"
	"github.com/gzreplay/gzr/internal/geo"
	"github.com/gzreplay/gzr/pkg/core"
)

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	Init() error
	Close() error

	// StoreReplay persists one decoded replay. Implementations must be safe
	// for concurrent use; the worker pool calls it from several goroutines.
	StoreReplay(item *Item) error
}

// Exporter is an optional interface for backends that write one file per replay.
type Exporter interface {
	LastExportPath() string
}

// Item is a decoded replay together with the metadata every backend shares.
type Item struct {
	ID     uuid.UUID
	Source string
	Replay *core.Replay
	Tracks []geo.Track
}

// NewItem assigns a fresh id to rep. Tracks are built only when withTracks is set.
func NewItem(source string, rep *core.Replay, withTracks bool) *Item {
	it := &Item{
		ID:     uuid.New(),
		Source: source,
		Replay: rep,
	}
	if withTracks {
		it.Tracks = geo.TracksFromEvents(rep.Events)
	}
	return it
}
