package worker

import (
	"context"
	"sync"
	"time"

	"github.com/gzreplay/gzr/internal/cache"
	"github.com/gzreplay/gzr/internal/queue"
	"github.com/gzreplay/gzr/internal/storage"
	"github.com/gzreplay/gzr/pkg/core"
	"github.com/rs/zerolog"
)

// Decoder turns one capture file into a replay. It must be safe for
// concurrent use; the registry behind it is shared read-only.
type Decoder interface {
	DecodeFile(path string) (*core.Replay, error)
}

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Decoder Decoder
	Logger  zerolog.Logger
	Workers int
	Tracks  bool
}

// Result is the outcome for one input file.
type Result struct {
	Path      string
	Item      *storage.Item
	Err       error
	StoreErrs []error
	Duration  time.Duration
}

type job struct {
	index int
	path  string
}

// Manager decodes queued files on a pool of goroutines and forwards every
// replay to each backend.
type Manager struct {
	deps     Dependencies
	backends []storage.Backend
	jobs     *queue.Queue[job]
	paths    []string

	Processed cache.SafeCounter
	Failed    cache.SafeCounter
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies, backends ...storage.Backend) *Manager {
	if deps.Workers <= 0 {
		deps.Workers = 1
	}
	return &Manager{
		deps:     deps,
		backends: backends,
		jobs:     queue.New[job](),
	}
}

// Enqueue adds files to decode on the next Run. Empty paths are ignored.
func (m *Manager) Enqueue(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		m.jobs.Push(job{index: len(m.paths), path: p})
		m.paths = append(m.paths, p)
	}
}

// Pending returns the number of files not yet picked up.
func (m *Manager) Pending() int {
	return m.jobs.Len()
}

// Run drains the queue and returns one result per enqueued file, in
// enqueue order. Files not started before ctx is cancelled keep ctx.Err().
func (m *Manager) Run(ctx context.Context) []Result {
	results := make([]Result, len(m.paths))
	done := make([]bool, len(m.paths))

	workers := m.deps.Workers
	if n := m.jobs.Len(); n < workers {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := m.deps.Logger.With().Int("worker", id).Logger()
			for {
				if err := ctx.Err(); err != nil {
					return
				}
				j, ok := m.jobs.TryPop()
				if !ok {
					return
				}
				results[j.index] = m.process(log, j.path)
				done[j.index] = true
			}
		}(w)
	}
	wg.Wait()

	for i := range results {
		if !done[i] {
			results[i] = Result{Path: m.paths[i], Err: ctx.Err()}
		}
	}

	m.jobs.Clear()
	m.paths = nil
	return results
}

func (m *Manager) process(log zerolog.Logger, path string) Result {
	start := time.Now()
	res := Result{Path: path}

	rep, err := m.deps.Decoder.DecodeFile(path)
	if err != nil {
		res.Err = err
		res.Duration = time.Since(start)
		m.Failed.Inc()
		log.Error().Err(err).Str("path", path).Msg("Failed to decode replay")
		return res
	}

	res.Item = storage.NewItem(path, rep, m.deps.Tracks)
	for _, b := range m.backends {
		if err := b.StoreReplay(res.Item); err != nil {
			res.StoreErrs = append(res.StoreErrs, err)
			log.Error().Err(err).Str("path", path).Msgf("Failed to store replay in %T", b)
		}
	}
	res.Duration = time.Since(start)
	m.Processed.Inc()

	log.Info().Str("path", path).
		Int("events", len(rep.Events)).
		Int("warnings", len(rep.Warnings)).
		Dur("duration", res.Duration).
		Msg("Replay decoded")
	return res
}

// DBWriteDurationProvider is an optional interface that backends can implement
// to expose their last DB write duration for monitoring.
type DBWriteDurationProvider interface {
	GetLastDBWriteDuration() time.Duration
}

// GetLastDBWriteDuration returns the longest last-write duration among the backends.
// Returns 0 if no backend supports this metric.
func (m *Manager) GetLastDBWriteDuration() time.Duration {
	var longest time.Duration
	for _, b := range m.backends {
		if p, ok := b.(DBWriteDurationProvider); ok {
			if d := p.GetLastDBWriteDuration(); d > longest {
				longest = d
			}
		}
	}
	return longest
}
