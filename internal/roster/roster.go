// Package roster decodes the player list that precedes the command stream
// and patches in players who joined after recording started.
package roster

import (
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/schema"
	"github.com/gzreplay/gzr/pkg/core"
)

// RecordMarker ends the character-info record in marker-delimited layouts.
var RecordMarker = []byte{0x7a, 0x44, 0x00, 0x00, 0x7a, 0x44}

// Decode reads an i32 player count and exactly that many records.
func Decode(r *binreader.Reader, decode schema.PlayerFunc) ([]core.Player, error) {
	count, err := r.Int32()
	if err != nil {
		return nil, fmt.Errorf("reading player count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("player count %d: %w", count, core.ErrInvalidPlayerCount)
	}

	// count is untrusted; cap the hint by what is left to read
	players := make([]core.Player, 0, min(int(count), r.Remaining()))
	for i := 0; i < int(count); i++ {
		p, err := decode(r)
		if err != nil {
			return nil, fmt.Errorf("player %d of %d at offset %d: %w", i, count, r.Offset(), err)
		}
		p.Slot = i
		players = append(players, p)
	}
	return players, nil
}

// ScanRecord returns the bytes from the cursor to one past the end of the next
// marker, searching the whole remaining buffer.
func ScanRecord(r *binreader.Reader, marker []byte) ([]byte, error) {
	start := r.Offset()
	pos := r.Index(marker)
	if pos < 0 {
		return nil, fmt.Errorf("no record marker after offset %d: %w", start, core.ErrMissingRecordMarker)
	}
	end := pos + len(marker) + 1
	return r.Bytes(end - start)
}
