package parser

import (
	"errors"
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/geo"
	"github.com/gzreplay/gzr/pkg/core"
)

// BasicInfo flag bits select the optional fields of a movement record.
const (
	FlagLongPos    uint8 = 1
	FlagCameraDir  uint8 = 2
	FlagAnimations uint8 = 4
	FlagSelItem    uint8 = 8
)

// errEmptyRecord is returned for a zero-length movement record.
var errEmptyRecord = errors.New("empty basic info record")

// ParseBasicInfo decodes the movement record that follows the 9-byte prefix.
// The record length comes from the sub-header size field.
func (p *Parser) ParseBasicInfo(payload []byte) (core.BasicInfo, error) {
	r := binreader.New(payload)
	total, err := r.Uint16()
	if err != nil {
		return core.BasicInfo{}, malformed(core.OpBasicInfo, r, err)
	}
	if err := r.Seek(serverOffset); err != nil {
		return core.BasicInfo{}, malformed(core.OpBasicInfo, r, err)
	}
	n := int(total) - serverOffset
	if n < 0 {
		return core.BasicInfo{}, &core.MalformedPayloadError{
			Opcode: core.OpBasicInfo,
			Offset: 0,
			Err:    fmt.Errorf("size field %d shorter than prefix: %w", total, binreader.ErrUnexpectedEnd),
		}
	}
	rec, err := r.Bytes(n)
	if err != nil {
		return core.BasicInfo{}, malformed(core.OpBasicInfo, r, err)
	}

	bi, off, err := UnpackBasicInfo(rec)
	if err != nil {
		return core.BasicInfo{}, &core.MalformedPayloadError{Opcode: core.OpBasicInfo, Offset: serverOffset + off, Err: err}
	}
	return bi, nil
}

// UnpackBasicInfo decodes a bit-flag movement record. On failure it also
// returns the record offset at which decoding stopped.
func UnpackBasicInfo(rec []byte) (core.BasicInfo, int, error) {
	if len(rec) == 0 {
		return core.BasicInfo{}, 0, errEmptyRecord
	}

	r := binreader.New(rec)
	bi := core.BasicInfo{LowerState: -1, UpperState: -1, SelectedSlot: -1}

	var err error
	if bi.Flags, err = r.Uint8(); err != nil {
		return core.BasicInfo{}, r.Offset(), err
	}
	if bi.Time, err = r.Float32(); err != nil {
		return core.BasicInfo{}, r.Offset(), fmt.Errorf("time: %w", err)
	}

	if bi.Flags&FlagLongPos != 0 {
		bi.Position, err = geo.ReadFloatVector(r)
	} else {
		bi.Position, err = geo.ReadShortVector(r)
	}
	if err != nil {
		return core.BasicInfo{}, r.Offset(), fmt.Errorf("position: %w", err)
	}

	// a short packed direction falls back to Up
	bi.Direction = geo.ReadDirection(r)

	if bi.Velocity, err = geo.ReadShortVector(r); err != nil {
		return core.BasicInfo{}, r.Offset(), fmt.Errorf("velocity: %w", err)
	}

	bi.CameraDir = bi.Direction
	if bi.Flags&FlagCameraDir != 0 {
		bi.CameraDir = geo.ReadDirection(r)
	}

	if bi.Flags&FlagAnimations != 0 {
		lower, err := r.Uint8()
		if err != nil {
			return core.BasicInfo{}, r.Offset(), fmt.Errorf("lower state: %w", err)
		}
		upper, err := r.Uint8()
		if err != nil {
			return core.BasicInfo{}, r.Offset(), fmt.Errorf("upper state: %w", err)
		}
		bi.LowerState, bi.UpperState = int16(lower), int16(upper)
	}

	if bi.Flags&FlagSelItem != 0 {
		slot, err := r.Uint8()
		if err != nil {
			return core.BasicInfo{}, r.Offset(), fmt.Errorf("selected slot: %w", err)
		}
		bi.SelectedSlot = int16(slot)
	}

	return bi, 0, nil
}
