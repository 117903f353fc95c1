// Package mcommand reads the parameter encoding used inside command payloads.
package mcommand

import (
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/pkg/core"
)

// ArrayHeaderSize is the element size and count prefix of a blob array.
const ArrayHeaderSize = 8

// Array is a homogeneous element array: i32 element size, i32 count, then
// count elements of element size bytes each.
type Array struct {
	ElemSize int32
	Count    int32
	blob     []byte
}

// ParseArray reads the array header from blob.
func ParseArray(blob []byte) (Array, error) {
	r := binreader.New(blob)
	size, err := r.Int32()
	if err != nil {
		return Array{}, fmt.Errorf("reading element size: %w", err)
	}
	count, err := r.Int32()
	if err != nil {
		return Array{}, fmt.Errorf("reading element count: %w", err)
	}
	if size < 0 {
		return Array{}, fmt.Errorf("negative element size %d: %w", size, core.ErrMalformedPayload)
	}
	return Array{ElemSize: size, Count: count, blob: blob}, nil
}

// TotalSize is the encoded length of the array including its header.
func (a Array) TotalSize() int {
	return ArrayHeaderSize + int(a.Count)*int(a.ElemSize)
}

// Offset returns the blob offset of element i.
func (a Array) Offset(i int) (int, error) {
	if i < 0 || i >= int(a.Count) {
		return 0, fmt.Errorf("element %d of %d: %w", i, a.Count, core.ErrIndexOutOfRange)
	}
	return ArrayHeaderSize + i*int(a.ElemSize), nil
}

// Element returns the bytes of element i.
func (a Array) Element(i int) ([]byte, error) {
	off, err := a.Offset(i)
	if err != nil {
		return nil, err
	}
	end := off + int(a.ElemSize)
	if end > len(a.blob) {
		return nil, fmt.Errorf("element %d ends at %d past blob of %d: %w", i, end, len(a.blob), binreader.ErrUnexpectedEnd)
	}
	return a.blob[off:end], nil
}
