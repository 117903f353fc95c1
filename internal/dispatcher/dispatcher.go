package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/gzreplay/gzr/internal/command"
	"github.com/gzreplay/gzr/pkg/core"
)

// MeterName scopes the decoder counters in the global meter provider.
const MeterName = "github.com/gzreplay/gzr/internal/dispatcher"

// HandlerFunc decodes one command payload. A nil event with a nil error means
// the payload produced nothing.
type HandlerFunc func(payload []byte) (core.Event, error)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Dispatcher routes command payloads to the decoder registered for their opcode.
// Registration happens before the first Run; Run itself only reads the handler map.
type Dispatcher struct {
	handlers map[core.Opcode]HandlerFunc
	logger   Logger

	// OTEL metrics
	total   metric.Int64Counter
	decoded metric.Int64Counter
	failed  metric.Int64Counter
	skipped metric.Int64Counter
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[core.Opcode]HandlerFunc),
		logger:   logger,
	}

	// no-op unless a meter provider was installed
	m := otel.Meter(MeterName)

	var err error

	d.total, err = m.Int64Counter(
		"decoder.commands.total",
		metric.WithDescription("Total commands seen"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating total counter: %w", err)
	}

	d.decoded, err = m.Int64Counter(
		"decoder.events.decoded",
		metric.WithDescription("Commands decoded into an event"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating decoded counter: %w", err)
	}

	d.failed, err = m.Int64Counter(
		"decoder.events.failed",
		metric.WithDescription("Commands whose payload failed to decode"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	d.skipped, err = m.Int64Counter(
		"decoder.commands.skipped",
		metric.WithDescription("Commands with no registered decoder"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given opcode with optional configuration.
func (d *Dispatcher) Register(op core.Opcode, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h

	if cfg.logged {
		handler = d.withLogging(op, handler)
	}

	d.handlers[op] = handler
}

// HasHandler returns true if a handler is registered for the opcode.
func (d *Dispatcher) HasHandler(op core.Opcode) bool {
	_, ok := d.handlers[op]
	return ok
}

// Dispatch routes a payload to its registered handler. Opcodes without a
// handler produce no event and no error.
func (d *Dispatcher) Dispatch(op core.Opcode, payload []byte) (core.Event, error) {
	h, ok := d.handlers[op]
	if !ok {
		return nil, nil
	}
	return h(payload)
}

// Run decodes every command in order. Each command yields at most one event;
// payload failures become warnings and never stop the loop.
func (d *Dispatcher) Run(cmds []core.Command) ([]core.EventRecord, []core.Warning) {
	ctx := context.Background()

	var (
		events   []core.EventRecord
		warnings []core.Warning
	)

	for i, c := range cmds {
		sh, err := command.PeekSubHeader(c.Payload)
		if err != nil {
			d.total.Add(ctx, 1)
			d.skipped.Add(ctx, 1)
			continue
		}

		op := sh.Opcode
		opAttr := metric.WithAttributes(attribute.Int("opcode", int(op)))
		d.total.Add(ctx, 1, opAttr)

		if !d.HasHandler(op) {
			d.skipped.Add(ctx, 1, opAttr)
			continue
		}

		ev, err := d.Dispatch(op, c.Payload)
		if err != nil {
			d.failed.Add(ctx, 1, opAttr)

			w := core.Warning{Index: i, Time: c.Time, Opcode: op, Err: err}
			var mpe *core.MalformedPayloadError
			if errors.As(err, &mpe) {
				w.Offset = mpe.Offset
			}
			warnings = append(warnings, w)
			d.logger.Warn("payload decode failed", "index", i, "opcode", op.String(), "offset", w.Offset, "error", err)
			continue
		}
		if ev == nil {
			d.skipped.Add(ctx, 1, opAttr)
			continue
		}

		d.decoded.Add(ctx, 1, opAttr)

		rec := core.EventRecord{
			Index:  i,
			Time:   c.Time,
			Sender: uint64(c.Sender),
			Opcode: op,
			Event:  ev,
		}
		// chat carries the real sender id in its payload
		if chat, ok := ev.(core.Chat); ok {
			rec.Sender = chat.Sender
		}
		events = append(events, rec)
	}

	d.logger.Debug("dispatch complete", "commands", len(cmds), "events", len(events), "warnings", len(warnings))
	return events, warnings
}

func (d *Dispatcher) withLogging(op core.Opcode, h HandlerFunc) HandlerFunc {
	return func(payload []byte) (core.Event, error) {
		start := time.Now()
		d.logger.Debug("decoding payload", "opcode", op.String(), "size", len(payload))

		ev, err := h(payload)

		if err != nil {
			d.logger.Error("decode failed", "opcode", op.String(), "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("decode complete", "opcode", op.String(), "duration", time.Since(start))
		}

		return ev, err
	}
}
