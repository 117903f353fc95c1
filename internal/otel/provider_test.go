package otel

import (
	"context"
	"testing"

	"github.com/gzreplay/gzr/internal/dispatcher"
	"github.com/gzreplay/gzr/internal/logging"
	"github.com/gzreplay/gzr/internal/wiretest"
	"github.com/gzreplay/gzr/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	p.Install()

	c, err := p.Meter("test").Int64Counter("x")
	require.NoError(t, err)
	c.Add(context.Background(), 1)

	totals, err := p.Totals(context.Background())
	require.NoError(t, err)
	assert.Nil(t, totals)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestTotals_SumsAcrossAttributes(t *testing.T) {
	p, err := New(Config{Enabled: true, ServiceName: "gzr-test"})
	require.NoError(t, err)
	defer p.Shutdown(context.Background())

	ctx := context.Background()
	m := p.Meter("test")
	decoded, err := m.Int64Counter("decoder.events.decoded")
	require.NoError(t, err)
	total, err := m.Int64Counter("decoder.commands.total")
	require.NoError(t, err)

	decoded.Add(ctx, 2, metric.WithAttributes(attribute.Int("opcode", 1)))
	decoded.Add(ctx, 3, metric.WithAttributes(attribute.Int("opcode", 2)))
	total.Add(ctx, 7)

	totals, err := p.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Total{
		{Name: "decoder.commands.total", Value: 7},
		{Name: "decoder.events.decoded", Value: 5},
	}, totals)
}

func TestShutdown_Enabled(t *testing.T) {
	p, err := New(Config{Enabled: true, ServiceName: "gzr-test"})
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInstall_DispatcherCounters(t *testing.T) {
	p, err := New(Config{Enabled: true, ServiceName: "gzr-test"})
	require.NoError(t, err)
	defer p.Shutdown(context.Background())
	p.Install()

	d, err := dispatcher.New(logging.NewDispatcherLogger(zerolog.Nop()))
	require.NoError(t, err)
	d.Register(core.OpReload, func([]byte) (core.Event, error) { return core.Reload{}, nil })

	reload := wiretest.Payload(uint16(core.OpReload), 0, nil)
	ping := wiretest.Payload(uint16(core.OpPing), 0, nil)
	d.Run([]core.Command{{Payload: reload}, {Payload: reload}, {Payload: ping}})

	totals, err := p.Totals(context.Background())
	require.NoError(t, err)
	got := make(map[string]int64)
	for _, tot := range totals {
		got[tot.Name] = tot.Value
	}
	assert.Equal(t, int64(3), got["decoder.commands.total"])
	assert.Equal(t, int64(2), got["decoder.events.decoded"])
	assert.Equal(t, int64(1), got["decoder.commands.skipped"])
}
