package roster

import (
	"encoding/binary"
	"testing"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedPlayer reads a 4-byte record: u32 muid.
func fixedPlayer(r *binreader.Reader) (core.Player, error) {
	id, err := r.Uint32()
	if err != nil {
		return core.Player{}, err
	}
	return core.Player{MUID: uint64(id)}, nil
}

func TestDecode(t *testing.T) {
	b := binary.LittleEndian.AppendUint32(nil, 2)
	b = binary.LittleEndian.AppendUint32(b, 100)
	b = binary.LittleEndian.AppendUint32(b, 200)
	b = append(b, 0xee)

	r := binreader.New(b)
	players, err := Decode(r, fixedPlayer)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, 1, players[1].Slot)
	assert.Equal(t, uint64(200), players[1].MUID)
	assert.Equal(t, 12, r.Offset(), "exactly count × record width consumed")
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{"no count", []byte{1, 0}, binreader.ErrUnexpectedEnd},
		{"negative count", binary.LittleEndian.AppendUint32(nil, 0xffffffff), core.ErrInvalidPlayerCount},
		{"short roster", append(binary.LittleEndian.AppendUint32(nil, 2), 1, 0, 0, 0), binreader.ErrUnexpectedEnd},
		{"huge count over tiny buffer", append(binary.LittleEndian.AppendUint32(nil, 0x7fffffff), 1, 2, 3), binreader.ErrUnexpectedEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(binreader.New(tt.buf), fixedPlayer)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_ZeroPlayers(t *testing.T) {
	players, err := Decode(binreader.New(make([]byte, 4)), fixedPlayer)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestScanRecord(t *testing.T) {
	b := []byte{0xaa, 0xbb}
	b = append(b, RecordMarker...)
	b = append(b, 0x01, 0x02)

	r := binreader.New(b)
	require.NoError(t, r.Skip(1))

	rec, err := ScanRecord(r, RecordMarker)
	require.NoError(t, err)
	assert.Equal(t, b[1:9], rec)
	assert.Equal(t, 9, r.Offset())
}

func TestScanRecord_MissingMarker(t *testing.T) {
	r := binreader.New([]byte{0x7a, 0x44, 0x00, 0x00, 0x7a})
	_, err := ScanRecord(r, RecordMarker)
	assert.ErrorIs(t, err, core.ErrMissingRecordMarker)
	assert.Equal(t, 0, r.Offset())
}

func TestScanRecord_MarkerAtEnd(t *testing.T) {
	r := binreader.New(append([]byte{1}, RecordMarker...))
	_, err := ScanRecord(r, RecordMarker)
	assert.ErrorIs(t, err, binreader.ErrUnexpectedEnd)
}
