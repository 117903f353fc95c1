package command

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t float32, sender uint32, size int32, payload []byte) []byte {
	b := binary.LittleEndian.AppendUint32(nil, math.Float32bits(t))
	b = append(b, 0xcc, 0xcc, 0xcc, 0xcc)
	b = binary.LittleEndian.AppendUint32(b, sender)
	b = binary.LittleEndian.AppendUint32(b, uint32(size))
	return append(b, payload...)
}

func TestTokenize(t *testing.T) {
	var buf []byte
	buf = append(buf, record(1.25, 10, 3, []byte{1, 2, 3})...)
	buf = append(buf, record(2.5, 11, 0, nil)...)
	buf = append(buf, record(3, 12, -5, nil)...)

	r := binreader.New(buf)
	cmds := Tokenize(r)

	require.Len(t, cmds, 3)
	assert.Equal(t, core.Command{Time: 1.25, Sender: 10, Size: 3, Payload: []byte{1, 2, 3}}, cmds[0])
	assert.Equal(t, uint32(11), cmds[1].Sender)
	assert.Empty(t, cmds[1].Payload)
	assert.Equal(t, int32(-5), cmds[2].Size)
	assert.Empty(t, cmds[2].Payload)
	assert.Equal(t, 0, r.Remaining())
}

func TestTokenize_TruncatedPayload(t *testing.T) {
	var buf []byte
	buf = append(buf, record(1, 1, 2, []byte{9, 9})...)
	buf = append(buf, record(2, 2, 50, []byte{1, 2, 3, 4})...)

	r := binreader.New(buf)
	cmds := Tokenize(r)

	require.Len(t, cmds, 1)
	assert.Equal(t, []byte{9, 9}, cmds[0].Payload)
	assert.Equal(t, 18, r.Offset(), "cursor rests at the start of the partial record")
}

func TestTokenize_TruncatedHeaderFields(t *testing.T) {
	full := record(1, 1, 0, nil)
	for cut := 0; cut < len(full); cut++ {
		cmds := Tokenize(binreader.New(full[:cut]))
		assert.Empty(t, cmds, "cut at %d", cut)
	}
}

func TestPeekSubHeader(t *testing.T) {
	p := binary.LittleEndian.AppendUint16(nil, 21)
	p = binary.LittleEndian.AppendUint16(p, uint16(core.OpChat))
	p = append(p, 4, 0xff)

	h, err := PeekSubHeader(p)
	require.NoError(t, err)
	assert.Equal(t, SubHeader{Size: 21, Opcode: core.OpChat, Sender: 4}, h)

	_, err = PeekSubHeader(p[:4])
	assert.ErrorIs(t, err, binreader.ErrUnexpectedEnd)
}
