// Package loader runs the full decode pipeline over a replay buffer.
package loader

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/command"
	"github.com/gzreplay/gzr/internal/decompress"
	"github.com/gzreplay/gzr/internal/dispatcher"
	"github.com/gzreplay/gzr/internal/logging"
	"github.com/gzreplay/gzr/internal/parser"
	"github.com/gzreplay/gzr/internal/roster"
	"github.com/gzreplay/gzr/internal/schema"
	"github.com/gzreplay/gzr/pkg/core"
)

// Accepted container magic values.
const (
	MagicCurrent uint32 = 0x95B1308A
	MagicLegacy  uint32 = 0x00DEFBAD
)

// Decoder turns replay bytes into a core.Replay. The registry and dispatcher
// are only read during a decode, so one Decoder may serve concurrent calls.
type Decoder struct {
	Registry   *schema.Registry
	Dispatcher *dispatcher.Dispatcher
	Logger     zerolog.Logger
}

// New builds a Decoder whose dispatcher knows every event decoder.
// Set verbose to log each payload decode at debug level.
func New(reg *schema.Registry, logger zerolog.Logger, verbose bool) (*Decoder, error) {
	d, err := dispatcher.New(logging.NewDispatcherLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}

	var opts []dispatcher.Option
	if verbose {
		opts = append(opts, dispatcher.Logged())
	}

	p := parser.NewParser(logger)
	for _, op := range parser.Opcodes() {
		op := op
		d.Register(op, func(payload []byte) (core.Event, error) {
			return p.Decode(op, payload)
		}, opts...)
	}

	return &Decoder{Registry: reg, Dispatcher: d, Logger: logger}, nil
}

// DecodeFile reads path and decodes it.
func (d *Decoder) DecodeFile(path string) (*core.Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay file: %w", err)
	}
	rep, err := d.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rep, nil
}

// Decode runs the pipeline: inflate, magic and version, header, stage,
// roster, command stream, event dispatch, late joins. Any failure before the
// command stream aborts the decode; payload failures become warnings.
func (d *Decoder) Decode(data []byte) (*core.Replay, error) {
	buf, inflated := decompress.Container(data)
	d.Logger.Debug().Bool("inflated", inflated).Int("size", len(buf)).Msg("Loaded replay buffer")

	r := binreader.New(buf)

	magic, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", core.ErrNotAReplay)
	}
	if magic != MagicCurrent && magic != MagicLegacy {
		return nil, fmt.Errorf("magic %#08x: %w", magic, core.ErrNotAReplay)
	}

	version, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", truncated(err))
	}

	s, err := d.Registry.Lookup(version)
	if err != nil {
		return nil, err
	}

	rep := &core.Replay{Magic: magic, Header: core.Header{Version: version}}

	if err := s.Header(r, &rep.Header); err != nil {
		return nil, fmt.Errorf("reading header: %w", truncated(err))
	}
	if rep.Stage, err = s.Stage(r); err != nil {
		return nil, fmt.Errorf("reading stage: %w", truncated(err))
	}
	if rep.Players, err = roster.Decode(r, s.Player); err != nil {
		return nil, fmt.Errorf("reading roster: %w", truncated(err))
	}

	d.Logger.Debug().
		Uint32("version", version).
		Str("map", rep.Stage.MapName).
		Int("players", len(rep.Players)).
		Msg("Decoded replay prefix")

	if err := r.Skip(command.StreamPreamble); err != nil {
		d.Logger.Warn().Int("offset", r.Offset()).Msg("No command stream after roster")
	} else {
		rep.Commands = command.Tokenize(r)
	}

	rep.Events, rep.Warnings = d.Dispatcher.Run(rep.Commands)

	var joinWarnings []core.Warning
	rep.Players, joinWarnings = roster.ReconstructLateJoins(rep.Players, rep.Commands, s.JoinPlayer)
	if len(joinWarnings) > 0 {
		rep.Warnings = append(rep.Warnings, joinWarnings...)
		sort.SliceStable(rep.Warnings, func(i, j int) bool {
			return rep.Warnings[i].Index < rep.Warnings[j].Index
		})
	}

	d.Logger.Debug().
		Int("commands", len(rep.Commands)).
		Int("events", len(rep.Events)).
		Int("warnings", len(rep.Warnings)).
		Msg("Decoded command stream")

	return rep, nil
}

// truncated tags running out of bytes in a required record.
func truncated(err error) error {
	if errors.Is(err, binreader.ErrUnexpectedEnd) {
		return fmt.Errorf("%w: %w", core.ErrTruncatedRecord, err)
	}
	return err
}
