package roster

import (
	"errors"
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/command"
	"github.com/gzreplay/gzr/internal/schema"
	"github.com/gzreplay/gzr/pkg/core"
)

const (
	// JoinMUIDOffset locates the joining player's id in a join-battle payload.
	JoinMUIDOffset = 0x22 - 0xc
	// JoinCharInfoOffset locates the embedded character-info record.
	JoinCharInfoOffset = 0x22
)

// ReconstructLateJoins scans the whole command log for join-battle records and
// appends a roster entry for every id not already present. It must run after
// tokenizing finishes. Records that cannot be decoded are returned as warnings.
func ReconstructLateJoins(players []core.Player, cmds []core.Command, decode schema.CharInfoFunc) ([]core.Player, []core.Warning) {
	if decode == nil {
		return players, nil
	}

	known := make(map[uint64]bool, len(players))
	for _, p := range players {
		if p.MUID != 0 {
			known[p.MUID] = true
		}
	}

	var warnings []core.Warning
	for i, c := range cmds {
		h, err := command.PeekSubHeader(c.Payload)
		if err != nil || h.Opcode != core.OpJoinBattle {
			continue
		}

		p, err := decodeJoin(c.Payload, decode)
		if err != nil {
			var offset int
			var mp *core.MalformedPayloadError
			if errors.As(err, &mp) {
				offset = mp.Offset
			}
			warnings = append(warnings, core.Warning{Index: i, Time: c.Time, Opcode: core.OpJoinBattle, Offset: offset, Err: err})
			continue
		}
		if p.MUID != 0 && known[p.MUID] {
			continue
		}
		if p.MUID != 0 {
			known[p.MUID] = true
		}

		p.Slot = len(players)
		p.LateJoin = true
		players = append(players, p)
	}
	return players, warnings
}

func decodeJoin(payload []byte, decode schema.CharInfoFunc) (core.Player, error) {
	r := binreader.New(payload)
	if err := r.Seek(JoinMUIDOffset); err != nil {
		return core.Player{}, &core.MalformedPayloadError{Opcode: core.OpJoinBattle, Offset: JoinMUIDOffset, Err: err}
	}
	muid, err := r.Uint32()
	if err != nil {
		return core.Player{}, &core.MalformedPayloadError{Opcode: core.OpJoinBattle, Offset: JoinMUIDOffset, Err: err}
	}
	if err := r.Seek(JoinCharInfoOffset); err != nil {
		return core.Player{}, &core.MalformedPayloadError{Opcode: core.OpJoinBattle, Offset: JoinCharInfoOffset, Err: err}
	}
	p, err := decode(r)
	if err != nil {
		return core.Player{}, &core.MalformedPayloadError{
			Opcode: core.OpJoinBattle,
			Offset: r.Offset(),
			Err:    fmt.Errorf("character info: %w", err),
		}
	}
	p.MUID = uint64(muid)
	return p, nil
}
