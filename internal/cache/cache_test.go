package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzreplay/gzr/pkg/core"
)

func TestPlayerCache_NewPlayerCache(t *testing.T) {
	cache := NewPlayerCache()

	require.NotNil(t, cache)
	assert.NotNil(t, cache.Players)
	assert.Equal(t, 0, cache.Len())
}

func TestPlayerCache_AddAndGetPlayer(t *testing.T) {
	cache := NewPlayerCache()

	cache.AddPlayer(core.Player{Slot: 1, Name: "Alpha", MUID: 42})

	got, ok := cache.GetPlayer(42)
	require.True(t, ok, "expected to find player with muid 42")
	assert.Equal(t, "Alpha", got.Name)
	assert.Equal(t, 1, got.Slot)
}

func TestPlayerCache_GetPlayer_NotFound(t *testing.T) {
	cache := NewPlayerCache()

	_, ok := cache.GetPlayer(999)
	assert.False(t, ok)
}

func TestPlayerCache_UnresolvedIDIsSkipped(t *testing.T) {
	cache := NewPlayerCache()

	cache.AddPlayer(core.Player{Name: "Legacy", MUID: 0})

	assert.Equal(t, 0, cache.Len())
	_, ok := cache.GetPlayer(0)
	assert.False(t, ok)
}

func TestPlayerCache_FirstPlayerWins(t *testing.T) {
	cache := FromRoster([]core.Player{
		{Slot: 0, Name: "First", MUID: 7},
		{Slot: 1, Name: "Second", MUID: 7},
		{Slot: 2, Name: "Other", MUID: 8},
	})

	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, "First", cache.Name(7))
	assert.Equal(t, "Other", cache.Name(8))
}

func TestPlayerCache_Name(t *testing.T) {
	cache := FromRoster([]core.Player{{Name: "Alpha", MUID: 42}})
	rep := &core.Replay{Players: []core.Player{{Name: "Alpha", MUID: 42}}}

	tests := []struct {
		name string
		muid uint64
		want string
	}{
		{"known", 42, "Alpha"},
		{"unknown", 5, "Unknown_Player(5)"},
		{"zero", 0, "Unknown_Player(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cache.Name(tt.muid))
			assert.Equal(t, rep.PlayerName(tt.muid), cache.Name(tt.muid))
		})
	}
}

func TestPlayerCache_Reset(t *testing.T) {
	cache := FromRoster([]core.Player{{Name: "Alpha", MUID: 42}})
	require.Equal(t, 1, cache.Len())

	cache.Reset()

	assert.Equal(t, 0, cache.Len())
}

func TestPlayerCache_ConcurrentAccess(t *testing.T) {
	cache := NewPlayerCache()
	var wg sync.WaitGroup

	for i := 1; i <= 100; i++ {
		wg.Add(2)
		go func(id uint64) {
			defer wg.Done()
			cache.AddPlayer(core.Player{MUID: id, Name: "p"})
		}(uint64(i))
		go func(id uint64) {
			defer wg.Done()
			cache.Name(id)
		}(uint64(i))
	}
	wg.Wait()

	assert.Equal(t, 100, cache.Len())
}

func TestSafeCounter(t *testing.T) {
	var c SafeCounter
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Value())

	c.Set(3)
	assert.Equal(t, 3, c.Value())
}
