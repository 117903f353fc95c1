// Package gormstorage implements storage.Backend on top of GORM. Replays are
// converted on the caller's goroutine and queued; a background writer inserts
// them so that decoding never waits on the database.
package gormstorage

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gzreplay/gzr/internal/database"
	"github.com/gzreplay/gzr/internal/model"
	"github.com/gzreplay/gzr/internal/model/convert"
	"github.com/gzreplay/gzr/internal/queue"
	"github.com/gzreplay/gzr/internal/storage"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DefaultFlushInterval is used when Dependencies.FlushInterval is zero.
const DefaultFlushInterval = 2 * time.Second

// ErrNotInitialized is returned by StoreReplay before Init succeeded.
var ErrNotInitialized = errors.New("storage backend not initialized")

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB            *gorm.DB
	Logger        zerolog.Logger
	FlushInterval time.Duration
}

// Backend implements storage.Backend using GORM with queue-based writes.
type Backend struct {
	deps    Dependencies
	pending *queue.Queue[model.ReplayRecord]

	flushMu   sync.Mutex
	stopChan  chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	dbReady   atomic.Bool

	stored        atomic.Int64
	lastWriteNano atomic.Int64
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = DefaultFlushInterval
	}
	return &Backend{
		deps:    deps,
		pending: queue.New[model.ReplayRecord](),
	}
}

// Init runs schema migration and starts the DB writer goroutine.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("no database connection")
	}
	if err := database.Setup(b.deps.DB, b.deps.Logger); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	b.dbReady.Store(true)

	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	go b.writerLoop()
	return nil
}

// StoreReplay converts item and queues it for the writer.
func (b *Backend) StoreReplay(item *storage.Item) error {
	if !b.dbReady.Load() {
		return ErrNotInitialized
	}
	b.pending.Push(convert.ItemToGorm(item))
	return nil
}

// Flush writes every queued replay now. Each replay is inserted in its own
// transaction; a failed replay does not block the others.
func (b *Backend) Flush() error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	items := b.pending.Drain(0)
	if len(items) == 0 {
		return nil
	}

	start := time.Now()
	var errs []error
	for i := range items {
		rec := &items[i]
		err := b.deps.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(rec).Error
		})
		if err != nil {
			b.deps.Logger.Error().Err(err).Str("replay", rec.ID).Str("source", rec.Source).
				Msg("Failed to write replay")
			errs = append(errs, fmt.Errorf("replay %s: %w", rec.ID, err))
			continue
		}
		b.stored.Add(1)
	}
	b.lastWriteNano.Store(int64(time.Since(start)))

	b.deps.Logger.Debug().Int("replays", len(items)).Dur("duration", time.Since(start)).
		Msg("Wrote replays to DB")
	return errors.Join(errs...)
}

func (b *Backend) writerLoop() {
	defer close(b.done)
	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			// errors are logged per replay inside Flush
			_ = b.Flush()
		}
	}
}

// Close stops the writer and flushes whatever is still queued.
func (b *Backend) Close() error {
	var err error
	b.closeOnce.Do(func() {
		if b.stopChan != nil {
			close(b.stopChan)
			<-b.done
		}
		if b.dbReady.Load() {
			err = b.Flush()
		}
	})
	return err
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Stored returns the number of replays written so far.
func (b *Backend) Stored() int64 {
	return b.stored.Load()
}

// Pending returns the number of replays waiting for the writer.
func (b *Backend) Pending() int {
	return b.pending.Len()
}

// GetLastDBWriteDuration returns the duration of the last flush.
func (b *Backend) GetLastDBWriteDuration() time.Duration {
	return time.Duration(b.lastWriteNano.Load())
}
