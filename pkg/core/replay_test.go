package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerName(t *testing.T) {
	r := &Replay{Players: []Player{
		{Slot: 0, Name: "Unresolved", MUID: 0},
		{Slot: 1, Name: "Alpha", MUID: 500},
		{Slot: 2, Name: "Bravo", MUID: 501},
	}}

	tests := []struct {
		name string
		muid uint64
		want string
	}{
		{"first match", 500, "Alpha"},
		{"second match", 501, "Bravo"},
		{"no match", 999, "Unknown_Player(999)"},
		{"unresolved id never matches", 0, "Unknown_Player(0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.PlayerName(tt.muid))
		})
	}
}

func TestPlayerName_EmptyRoster(t *testing.T) {
	r := &Replay{}
	assert.Equal(t, "Unknown_Player(7)", r.PlayerName(7))
}

func TestSummary(t *testing.T) {
	r := &Replay{Events: []EventRecord{
		{Event: Reload{}},
		{Event: Reload{}},
		{Event: Chat{Message: "gg"}},
	}}
	assert.Equal(t, map[string]int{"reload": 2, "chat": 1}, r.Summary())
}

func TestHeaderCaptureTime(t *testing.T) {
	assert.True(t, Header{}.CaptureTime().IsZero())
	h := Header{Timestamp: 1700000000, Major: 1, Minor: 2, Patch: 3, Revision: 4}
	assert.Equal(t, int64(1700000000), h.CaptureTime().Unix())
	assert.Equal(t, "1.2.3.4", h.BuildVersion())
}

func TestWarningUnwrap(t *testing.T) {
	inner := &MalformedPayloadError{Opcode: OpChat, Offset: 9, Err: errors.New("short")}
	w := Warning{Index: 3, Opcode: OpChat, Offset: 9, Err: inner}

	assert.ErrorIs(t, w, ErrMalformedPayload)
	var mp *MalformedPayloadError
	require.ErrorAs(t, w, &mp)
	assert.Equal(t, 9, mp.Offset)
	assert.Contains(t, w.Error(), "command 3")
}

func TestUnsupportedVersionError(t *testing.T) {
	err := fmt.Errorf("decode: %w", &UnsupportedVersionError{Version: 9, Slot: SlotStage})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "no stage decoder")
}
