package geo

import (
	"testing"

	"github.com/gzreplay/gzr/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracksFromEvents(t *testing.T) {
	events := []core.EventRecord{
		{Sender: 2, Time: 1, Event: core.BasicInfo{Position: core.Vec3{X: 0, Y: 0, Z: 0}}},
		{Sender: 1, Time: 1, Event: core.BasicInfo{Position: core.Vec3{X: 5, Y: 5, Z: 0}}},
		{Sender: 2, Time: 2, Event: core.Reload{}},
		{Sender: 2, Time: 3, Event: core.BasicInfo{Position: core.Vec3{X: 3, Y: 4, Z: 0}}},
	}

	tracks := TracksFromEvents(events)
	require.Len(t, tracks, 2)

	assert.Equal(t, uint64(1), tracks[0].Sender)
	assert.Len(t, tracks[0].Points, 1)
	assert.True(t, tracks[0].LineString().IsEmpty())

	assert.Equal(t, uint64(2), tracks[1].Sender)
	assert.Equal(t, []float32{1, 3}, tracks[1].Times)
	ls := tracks[1].LineString()
	assert.False(t, ls.IsEmpty())
	assert.Equal(t, 2, ls.Coordinates().Length())
	assert.InDelta(t, 5.0, tracks[1].Length(), 1e-9)
}
