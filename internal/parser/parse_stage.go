package parser

import (
	"fmt"

	"github.com/gzreplay/gzr/pkg/core"
)

// ParseSpawn keeps position and direction as raw unsigned shorts.
func (p *Parser) ParseSpawn(payload []byte) (core.Spawn, error) {
	var f struct {
		MUID      uint32
		Position  [3]uint16
		Direction [3]uint16
	}
	if err := fields(core.OpSpawn, payload, serverOffset, &f); err != nil {
		return core.Spawn{}, err
	}
	return core.Spawn{MUID: f.MUID, Position: f.Position, Direction: f.Direction}, nil
}

// ParseWorldItemPickup decodes an item pickup.
func (p *Parser) ParseWorldItemPickup(payload []byte) (core.WorldItemPickup, error) {
	var f struct {
		MUID   uint32
		ItemID uint32
	}
	if err := fields(core.OpWorldItemPickup, payload, serverOffset, &f); err != nil {
		return core.WorldItemPickup{}, err
	}
	return core.WorldItemPickup{MUID: f.MUID, ItemID: f.ItemID}, nil
}

// ParseAnnouncement decodes a server broadcast: u32 type, u16 length, text.
func (p *Parser) ParseAnnouncement(payload []byte) (core.Announcement, error) {
	r, err := readerAt(core.OpAnnounce, payload, paramsOffset)
	if err != nil {
		return core.Announcement{}, err
	}
	typ, err := r.Uint32()
	if err != nil {
		return core.Announcement{}, malformed(core.OpAnnounce, r, err)
	}
	n, err := r.Uint16()
	if err != nil {
		return core.Announcement{}, malformed(core.OpAnnounce, r, err)
	}
	msg, err := r.String(int(n))
	if err != nil {
		return core.Announcement{}, malformed(core.OpAnnounce, r, fmt.Errorf("message: %w", err))
	}
	return core.Announcement{Type: typ, Message: msg}, nil
}

// ParseChat decodes a stage chat message. The sender inside the payload is the
// player's 64-bit id, which callers prefer over the transport sender.
func (p *Parser) ParseChat(payload []byte) (core.Chat, error) {
	r, err := readerAt(core.OpChat, payload, serverOffset)
	if err != nil {
		return core.Chat{}, err
	}
	var c core.Chat
	if c.Sender, err = r.Uint64(); err != nil {
		return core.Chat{}, malformed(core.OpChat, r, fmt.Errorf("sender: %w", err))
	}
	if c.StageUID, err = r.Uint32(); err != nil {
		return core.Chat{}, malformed(core.OpChat, r, fmt.Errorf("stage uid: %w", err))
	}
	n, err := r.Uint16()
	if err != nil {
		return core.Chat{}, malformed(core.OpChat, r, fmt.Errorf("message length: %w", err))
	}
	if c.Message, err = r.String(int(n)); err != nil {
		return core.Chat{}, malformed(core.OpChat, r, fmt.Errorf("message: %w", err))
	}
	if c.Team, err = r.Int32(); err != nil {
		return core.Chat{}, malformed(core.OpChat, r, fmt.Errorf("team: %w", err))
	}
	return c, nil
}
