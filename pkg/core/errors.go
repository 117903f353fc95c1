package core

import (
	"errors"
	"fmt"
)

// Decode failures. Header, stage and roster failures abort a decode;
// per-command failures surface as Warning values instead.
var (
	ErrNotAReplay          = errors.New("not a replay")
	ErrUnsupportedVersion  = errors.New("unsupported replay version")
	ErrTruncatedRecord     = errors.New("truncated record")
	ErrMissingRecordMarker = errors.New("missing record marker")
	ErrMalformedPayload    = errors.New("malformed payload")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrInvalidPlayerCount  = errors.New("invalid player count")
)

// Slot names one of the per-version decoders.
type Slot string

const (
	SlotHeader Slot = "header"
	SlotStage  Slot = "stage"
	SlotPlayer Slot = "player"
)

// UnsupportedVersionError reports which decoder is missing for a version.
type UnsupportedVersionError struct {
	Version uint32
	Slot    Slot
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported replay version %d: no %s decoder", e.Version, e.Slot)
}

func (e *UnsupportedVersionError) Unwrap() error {
	return ErrUnsupportedVersion
}

// MalformedPayloadError locates a payload decode failure.
type MalformedPayloadError struct {
	Opcode Opcode
	Offset int
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed %s payload at offset %d: %v", e.Opcode, e.Offset, e.Err)
}

func (e *MalformedPayloadError) Unwrap() []error {
	return []error{ErrMalformedPayload, e.Err}
}
