// Package gzr decodes GunZ replay files.
//
//	rep, err := gzr.DecodeFile("match.gzr")
//	if err != nil {
//		return err
//	}
//	for _, e := range rep.Events {
//		fmt.Println(e.Time, rep.PlayerName(e.Sender), e.Event.Kind())
//	}
package gzr

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/gzreplay/gzr/internal/loader"
	"github.com/gzreplay/gzr/internal/schema"
	"github.com/gzreplay/gzr/internal/versions"
	"github.com/gzreplay/gzr/pkg/core"
)

// Option configures a Decoder.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	registry *schema.Registry
	verbose  bool
}

// WithLogger routes decoder logging to logger. The default discards it.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry replaces the built-in format versions.
func WithRegistry(reg *schema.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithVerbose logs every payload decode at debug level.
func WithVerbose() Option {
	return func(o *options) {
		o.verbose = true
	}
}

// Decoder decodes replays. It is safe for concurrent use.
type Decoder struct {
	d *loader.Decoder
}

// NewDecoder builds a Decoder. Without WithRegistry every known format version is supported.
func NewDecoder(opts ...Option) (*Decoder, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = versions.NewRegistry()
	}
	d, err := loader.New(o.registry, o.logger, o.verbose)
	if err != nil {
		return nil, err
	}
	return &Decoder{d: d}, nil
}

// Decode decodes a replay held in memory. Compressed and raw containers are both accepted.
func (d *Decoder) Decode(data []byte) (*core.Replay, error) {
	return d.d.Decode(data)
}

// DecodeFile reads and decodes the replay at path.
func (d *Decoder) DecodeFile(path string) (*core.Replay, error) {
	return d.d.DecodeFile(path)
}

var (
	defaultOnce    sync.Once
	defaultDecoder *Decoder
	defaultErr     error
)

func defaultDec() (*Decoder, error) {
	defaultOnce.Do(func() {
		defaultDecoder, defaultErr = NewDecoder()
	})
	return defaultDecoder, defaultErr
}

// Decode decodes data with the default decoder.
func Decode(data []byte) (*core.Replay, error) {
	d, err := defaultDec()
	if err != nil {
		return nil, err
	}
	return d.Decode(data)
}

// DecodeFile decodes the file at path with the default decoder.
func DecodeFile(path string) (*core.Replay, error) {
	d, err := defaultDec()
	if err != nil {
		return nil, err
	}
	return d.DecodeFile(path)
}
