// Package parser decodes command payloads into typed events.
package parser

import (
	"github.com/rs/zerolog"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/pkg/core"
)

// Payload offsets shared by several opcodes. Payloads start with the 5-byte
// sub-header; server-originated commands carry a further 4-byte prefix.
const (
	paramsOffset = 5
	serverOffset = 9
)

// Parser turns raw command payloads into core events.
// It has no dependencies beyond a logger and is safe for concurrent use.
type Parser struct {
	logger zerolog.Logger
}

// NewParser creates a parser with only a logger dependency
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Decode decodes payload according to op. Opcodes without a decoder return a
// nil event and a nil error. Decode failures are *core.MalformedPayloadError.
func (p *Parser) Decode(op core.Opcode, payload []byte) (core.Event, error) {
	var (
		ev  core.Event
		err error
	)
	switch op {
	case core.OpBasicInfo:
		ev, err = p.ParseBasicInfo(payload)
	case core.OpShotgun:
		ev, err = p.ParseShotgun(payload)
	case core.OpRoundState:
		ev, err = p.ParseRoundState(payload)
	case core.OpHPAPInfo:
		ev, err = p.ParseHPAPInfo(payload)
	case core.OpChangeWeapon:
		ev, err = p.ParseWeaponChange(payload)
	case core.OpDash:
		ev, err = p.ParseDash(payload)
	case core.OpSlash:
		ev, err = p.ParseSlash(payload)
	case core.OpReload:
		ev = core.Reload{}
	case core.OpPeerShotSP:
		ev, err = p.ParseRangedShot(payload)
	case core.OpPeerSPMotion:
		ev, err = p.ParseMotionFlag(payload)
	case core.OpSpawn:
		ev, err = p.ParseSpawn(payload)
	case core.OpDie:
		ev, err = p.ParseDeath(payload)
	case core.OpAnnounce:
		ev, err = p.ParseAnnouncement(payload)
	case core.OpMassive:
		ev, err = p.ParseAreaDamage(payload)
	case core.OpSkill:
		ev, err = p.ParseSkill(payload)
	case core.OpChat:
		ev, err = p.ParseChat(payload)
	case core.OpWorldItemPickup:
		ev, err = p.ParseWorldItemPickup(payload)
	case core.OpGameDead:
		ev, err = p.ParseKill(payload)
	default:
		return nil, nil
	}
	if err != nil {
		p.logger.Trace().Err(err).Stringer("opcode", op).Int("size", len(payload)).Msg("payload decode failed")
		return nil, err
	}
	return ev, nil
}

// readerAt positions a reader at off within payload.
func readerAt(op core.Opcode, payload []byte, off int) (*binreader.Reader, error) {
	r := binreader.New(payload)
	if err := r.Seek(off); err != nil {
		return nil, &core.MalformedPayloadError{Opcode: op, Offset: len(payload), Err: err}
	}
	return r, nil
}

// malformed records where in the payload a read failed. Failed reads do not
// advance, so the cursor offset is the start of the field that could not be read.
func malformed(op core.Opcode, r *binreader.Reader, err error) error {
	return &core.MalformedPayloadError{Opcode: op, Offset: r.Offset(), Err: err}
}

// fields reads a fixed-size little-endian struct at off.
func fields(op core.Opcode, payload []byte, off int, v any) error {
	r, err := readerAt(op, payload, off)
	if err != nil {
		return err
	}
	if err := r.Struct(v); err != nil {
		return malformed(op, r, err)
	}
	return nil
}

func vec(v [3]float32) core.Vec3 {
	return core.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// Opcodes lists every opcode Decode produces events for.
func Opcodes() []core.Opcode {
	return []core.Opcode{
		core.OpBasicInfo,
		core.OpShotgun,
		core.OpRoundState,
		core.OpHPAPInfo,
		core.OpChangeWeapon,
		core.OpDash,
		core.OpSlash,
		core.OpReload,
		core.OpPeerShotSP,
		core.OpPeerSPMotion,
		core.OpSpawn,
		core.OpDie,
		core.OpAnnounce,
		core.OpMassive,
		core.OpSkill,
		core.OpChat,
		core.OpWorldItemPickup,
		core.OpGameDead,
	}
}
