// Package schema maps replay format versions to their record decoders.
package schema

import (
	"sort"
	"sync"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/pkg/core"
)

// HeaderFunc decodes the version-specific header that follows magic and version.
type HeaderFunc func(r *binreader.Reader, h *core.Header) error

// StageFunc decodes the stage settings record.
type StageFunc func(r *binreader.Reader) (core.Stage, error)

// PlayerFunc decodes one roster record.
type PlayerFunc func(r *binreader.Reader) (core.Player, error)

// CharInfoFunc decodes a bare character-info record, as embedded in join-battle payloads.
type CharInfoFunc func(r *binreader.Reader) (core.Player, error)

// Schema is the set of decoders for one format version.
// Any nil slot means the version is not supported for that record.
type Schema struct {
	Header     HeaderFunc
	Stage      StageFunc
	Player     PlayerFunc
	JoinPlayer CharInfoFunc
}

// Registry is built once at startup and only read afterwards.
type Registry struct {
	mu       sync.RWMutex
	versions map[uint32]Schema
}

func NewRegistry() *Registry {
	return &Registry{versions: make(map[uint32]Schema)}
}

// Register installs the decoders for version, replacing any earlier entry.
func (r *Registry) Register(version uint32, s Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions[version] = s
}

// Lookup returns the schema for version, or an *core.UnsupportedVersionError
// naming the first missing slot.
func (r *Registry) Lookup(version uint32) (Schema, error) {
	r.mu.RLock()
	s, ok := r.versions[version]
	r.mu.RUnlock()

	switch {
	case !ok || s.Header == nil:
		return Schema{}, &core.UnsupportedVersionError{Version: version, Slot: core.SlotHeader}
	case s.Stage == nil:
		return Schema{}, &core.UnsupportedVersionError{Version: version, Slot: core.SlotStage}
	case s.Player == nil:
		return Schema{}, &core.UnsupportedVersionError{Version: version, Slot: core.SlotPlayer}
	}
	return s, nil
}

// Versions lists registered versions in ascending order.
func (r *Registry) Versions() []uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]uint32, 0, len(r.versions))
	for v := range r.versions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
