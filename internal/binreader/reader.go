// Package binreader is a bounds-checked little-endian cursor over an immutable byte buffer.
package binreader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"
)

// ErrUnexpectedEnd is returned when fewer bytes remain than a read needs.
var ErrUnexpectedEnd = errors.New("unexpected end of buffer")

// Reader never advances on a failed read.
type Reader struct {
	b      []byte
	offset int
}

func New(b []byte) *Reader {
	return &Reader{b: b}
}

// Offset returns the current position.
func (r *Reader) Offset() int {
	return r.offset
}

// Len returns the total buffer length.
func (r *Reader) Len() int {
	return len(r.b)
}

// Remaining returns the bytes left after the cursor.
func (r *Reader) Remaining() int {
	return len(r.b) - r.offset
}

// Buffer returns the whole underlying buffer.
func (r *Reader) Buffer() []byte {
	return r.b
}

func (r *Reader) need(n int) error {
	if n < 0 || r.offset+n > len(r.b) {
		return fmt.Errorf("need %d bytes at offset %d, have %d: %w", n, r.offset, r.Remaining(), ErrUnexpectedEnd)
	}
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.b[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

// Seek moves to an absolute position.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.b) {
		return fmt.Errorf("seek to %d outside buffer of %d: %w", pos, len(r.b), ErrUnexpectedEnd)
	}
	r.offset = pos
	return nil
}

func (r *Reader) Skip(n int) error {
	return r.Seek(r.offset + n)
}

func (r *Reader) Back(n int) error {
	return r.Seek(r.offset - n)
}

// Bytes returns the next n bytes. The slice aliases the buffer.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

func (r *Reader) Bool() (bool, error) {
	v, err := r.Uint8()
	return v != 0, err
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}

// String reads a fixed-width field and cuts it at the first NUL.
func (r *Reader) String(n int) (string, error) {
	b, err := r.take(n)
	if err != nil {
		return "", err
	}
	return CString(b), nil
}

// StringUntil reads up to term and consumes it. Without a terminator it reads
// to the end of the buffer.
func (r *Reader) StringUntil(term byte) string {
	rest := r.b[r.offset:]
	i := bytes.IndexByte(rest, term)
	if i < 0 {
		r.offset = len(r.b)
		return Latin1(rest)
	}
	r.offset += i + 1
	return Latin1(rest[:i])
}

// Index returns the absolute position of the next occurrence of sep at or after the cursor, or -1.
func (r *Reader) Index(sep []byte) int {
	i := bytes.Index(r.b[r.offset:], sep)
	if i < 0 {
		return -1
	}
	return r.offset + i
}

// Struct decodes a fixed-size struct laid out with no padding, as encoding/binary does.
// Blank (_) fields are skipped.
func (r *Reader) Struct(v any) error {
	n := binary.Size(v)
	if n < 0 {
		return fmt.Errorf("%T has no fixed size", v)
	}
	b, err := r.take(n)
	if err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, v)
}

// CString decodes a fixed-width field, cut at the first NUL.
func CString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return Latin1(b)
}

// Latin1 decodes bytes as ISO-8859-1. Every byte maps to a rune, so it cannot fail.
func Latin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// unreachable for ISO-8859-1
		return string(bytes.ToValidUTF8(b, []byte("�")))
	}
	return string(s)
}
