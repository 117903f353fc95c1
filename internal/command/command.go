// Package command splits the replay body into transport records and reads
// the sub-header every payload starts with.
package command

import (
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/pkg/core"
)

const (
	// SubHeaderSize is u16 total size, u16 opcode, u8 local sender.
	SubHeaderSize = 5

	// RecordPad sits between the timestamp and the sender of every transport record.
	RecordPad = 4

	// StreamPreamble is skipped between the roster and the first record.
	StreamPreamble = 4
)

// SubHeader is the prefix of every command payload.
type SubHeader struct {
	Size   uint16
	Opcode core.Opcode
	Sender uint8
}

// PeekSubHeader reads the sub-header without interpreting the rest of the payload.
func PeekSubHeader(payload []byte) (SubHeader, error) {
	r := binreader.New(payload)
	size, err := r.Uint16()
	if err != nil {
		return SubHeader{}, fmt.Errorf("reading payload size: %w", err)
	}
	op, err := r.Uint16()
	if err != nil {
		return SubHeader{}, fmt.Errorf("reading opcode: %w", err)
	}
	sender, err := r.Uint8()
	if err != nil {
		return SubHeader{}, fmt.Errorf("reading local sender: %w", err)
	}
	return SubHeader{Size: size, Opcode: core.Opcode(op), Sender: sender}, nil
}

// ReadRecord reads one transport record. On failure the cursor is restored
// to where the record began.
func ReadRecord(r *binreader.Reader) (core.Command, error) {
	start := r.Offset()
	c, err := readRecord(r)
	if err != nil {
		r.Seek(start)
		return core.Command{}, err
	}
	return c, nil
}

func readRecord(r *binreader.Reader) (core.Command, error) {
	var c core.Command
	var err error
	if c.Time, err = r.Float32(); err != nil {
		return c, err
	}
	if err = r.Skip(RecordPad); err != nil {
		return c, err
	}
	if c.Sender, err = r.Uint32(); err != nil {
		return c, err
	}
	if c.Size, err = r.Int32(); err != nil {
		return c, err
	}
	n := int(c.Size)
	if n < 0 {
		n = 0
	}
	if c.Payload, err = r.Bytes(n); err != nil {
		return c, err
	}
	return c, nil
}

// Tokenize reads records until one cannot be read in full.
// Running out of buffer is how the stream ends, so it is not reported.
func Tokenize(r *binreader.Reader) []core.Command {
	var cmds []core.Command
	for {
		c, err := ReadRecord(r)
		if err != nil {
			return cmds
		}
		cmds = append(cmds, c)
	}
}
