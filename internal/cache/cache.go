package cache

import (
	"fmt"
	"sync"

	"github.com/gzreplay/gzr/pkg/core"
)

// PlayerCache indexes a roster by match-unique id so exporters can resolve
// senders without scanning the player list for every event.
type PlayerCache struct {
	m       sync.RWMutex
	Players map[uint64]core.Player
}

func NewPlayerCache() *PlayerCache {
	return &PlayerCache{
		Players: make(map[uint64]core.Player),
	}
}

// FromRoster builds a cache holding every player with a resolved id.
func FromRoster(players []core.Player) *PlayerCache {
	c := NewPlayerCache()
	for _, p := range players {
		c.AddPlayer(p)
	}
	return c
}

func (c *PlayerCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.Players = make(map[uint64]core.Player)
}

// AddPlayer stores p. Players with MUID 0 are never indexed; the first
// player seen for an id wins.
func (c *PlayerCache) AddPlayer(p core.Player) {
	if p.MUID == 0 {
		return
	}
	c.m.Lock()
	defer c.m.Unlock()
	if _, ok := c.Players[p.MUID]; ok {
		return
	}
	c.Players[p.MUID] = p
}

func (c *PlayerCache) GetPlayer(muid uint64) (core.Player, bool) {
	c.m.RLock()
	defer c.m.RUnlock()
	if p, ok := c.Players[muid]; ok {
		return p, true
	}
	return core.Player{}, false
}

// Name resolves muid to a player name, with the same placeholder
// core.Replay.PlayerName uses for unknown ids.
func (c *PlayerCache) Name(muid uint64) string {
	if p, ok := c.GetPlayer(muid); ok {
		return p.Name
	}
	return fmt.Sprintf("Unknown_Player(%d)", muid)
}

func (c *PlayerCache) Len() int {
	c.m.RLock()
	defer c.m.RUnlock()
	return len(c.Players)
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
