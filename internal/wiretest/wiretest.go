// Package wiretest builds little-endian byte fixtures for decoder tests.
package wiretest

import (
	"encoding/binary"
	"math"
)

// Buffer appends little-endian values. Methods chain.
type Buffer struct {
	b []byte
}

func New() *Buffer {
	return &Buffer{}
}

func (w *Buffer) Bytes() []byte {
	return w.b
}

func (w *Buffer) Len() int {
	return len(w.b)
}

func (w *Buffer) Raw(b ...byte) *Buffer {
	w.b = append(w.b, b...)
	return w
}

func (w *Buffer) Zeros(n int) *Buffer {
	w.b = append(w.b, make([]byte, n)...)
	return w
}

// PadTo appends zeros until the buffer is n bytes long.
func (w *Buffer) PadTo(n int) *Buffer {
	if n > len(w.b) {
		w.Zeros(n - len(w.b))
	}
	return w
}

func (w *Buffer) U8(v uint8) *Buffer {
	w.b = append(w.b, v)
	return w
}

func (w *Buffer) Bool(v bool) *Buffer {
	if v {
		return w.U8(1)
	}
	return w.U8(0)
}

func (w *Buffer) U16(v uint16) *Buffer {
	w.b = binary.LittleEndian.AppendUint16(w.b, v)
	return w
}

func (w *Buffer) I16(v int16) *Buffer {
	return w.U16(uint16(v))
}

func (w *Buffer) U32(v uint32) *Buffer {
	w.b = binary.LittleEndian.AppendUint32(w.b, v)
	return w
}

func (w *Buffer) I32(v int32) *Buffer {
	return w.U32(uint32(v))
}

func (w *Buffer) U64(v uint64) *Buffer {
	w.b = binary.LittleEndian.AppendUint64(w.b, v)
	return w
}

func (w *Buffer) F32(v float32) *Buffer {
	return w.U32(math.Float32bits(v))
}

// Str writes s into a NUL-padded field of n bytes.
func (w *Buffer) Str(s string, n int) *Buffer {
	field := make([]byte, n)
	copy(field, s)
	w.b = append(w.b, field...)
	return w
}

// Payload prefixes body with the 5-byte command sub-header.
// The size field holds the full payload length.
func Payload(opcode uint16, sender uint8, body []byte) []byte {
	w := New().U16(uint16(5 + len(body))).U16(opcode).U8(sender)
	return w.Raw(body...).Bytes()
}

// Record encodes one transport record.
func Record(time float32, sender uint32, payload []byte) []byte {
	return New().F32(time).Raw(0xcc, 0xcc, 0xcc, 0xcc).U32(sender).I32(int32(len(payload))).Raw(payload...).Bytes()
}
