package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzreplay/gzr/internal/versions"
	"github.com/gzreplay/gzr/internal/wiretest"
	"github.com/gzreplay/gzr/pkg/core"
)

func newTestDecoder(t *testing.T) *Decoder {
	t.Helper()
	d, err := New(versions.NewRegistry(), zerolog.Nop(), false)
	require.NoError(t, err)
	return d
}

func stream(w *wiretest.Buffer) *wiretest.Buffer {
	hpap := wiretest.Payload(uint16(core.OpHPAPInfo), 0, wiretest.New().F32(100).F32(50).Bytes())
	chat := wiretest.Payload(uint16(core.OpChat), 0, wiretest.New().Zeros(4).
		U64(5678).U32(1).U16(2).Raw('g', 'g').I32(0).Bytes())
	badDeath := wiretest.Payload(uint16(core.OpDie), 0, []byte{1, 2})

	w.Zeros(4).
		Raw(wiretest.Record(0.5, 1, hpap)...).
		Raw(wiretest.Record(1.0, 2, wiretest.JoinBattlePayload(9000, "Latecomer"))...).
		Raw(wiretest.Record(1.5, 3, chat)...).
		Raw(wiretest.Record(2.0, 4, badDeath)...).
		Raw(wiretest.Record(2.5, 5, wiretest.Payload(uint16(core.OpPing), 0, nil))...)
	// a record cut off mid-header ends the stream
	return w.F32(3.0).Zeros(4)
}

func v6Replay(magic uint32) []byte {
	w := wiretest.New().ReplayPrefixV6(magic, 2).
		PlayerV6(true, "Host", 1, 1234).
		PlayerV6(false, "Guest", 2, 5678)
	return stream(w).Bytes()
}

func TestDecode_V6(t *testing.T) {
	d := newTestDecoder(t)

	rep, err := d.Decode(v6Replay(MagicCurrent))
	require.NoError(t, err)

	assert.Equal(t, MagicCurrent, rep.Magic)
	assert.Equal(t, uint32(6), rep.Header.Version)
	assert.Equal(t, "1.0.2.3", rep.Header.BuildVersion())
	assert.Equal(t, "Mansion", rep.Stage.MapName)

	require.Len(t, rep.Commands, 5)
	assert.Equal(t, float32(2.5), rep.Commands[4].Time)

	require.Len(t, rep.Events, 2)
	assert.Equal(t, core.HPAPInfo{HP: 100, AP: 50}, rep.Events[0].Event)
	assert.Equal(t, 0, rep.Events[0].Index)
	assert.Equal(t, 2, rep.Events[1].Index)
	assert.Equal(t, uint64(5678), rep.Events[1].Sender)
	assert.Equal(t, "Guest", rep.PlayerName(rep.Events[1].Sender))

	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, 3, rep.Warnings[0].Index)
	assert.ErrorIs(t, rep.Warnings[0], core.ErrMalformedPayload)

	require.Len(t, rep.Players, 3)
	assert.Equal(t, "Host", rep.Players[0].Name)
	assert.True(t, rep.Players[0].IsHero)
	late := rep.Players[2]
	assert.Equal(t, "Latecomer", late.Name)
	assert.Equal(t, uint64(9000), late.MUID)
	assert.True(t, late.LateJoin)
	assert.Equal(t, 2, late.Slot)

	assert.Equal(t, map[string]int{"hpap": 1, "chat": 1}, rep.Summary())
}

func TestDecode_Compressed(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(v6Replay(MagicLegacy))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	rep, err := newTestDecoder(t).Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, MagicLegacy, rep.Magic)
	assert.Len(t, rep.Players, 3)
	assert.Len(t, rep.Events, 2)
}

func TestDecode_Legacy(t *testing.T) {
	for _, version := range []uint32{versions.V4, versions.V7} {
		w := wiretest.New().U32(MagicCurrent).U32(version).
			LegacyStage("Town", 3).
			I32(2).LegacyPlayer(true, "First", 1).LegacyPlayer(false, "Second", 2)
		data := stream(w).Bytes()

		rep, err := newTestDecoder(t).Decode(data)
		require.NoError(t, err, "version %d", version)
		assert.Equal(t, "Town", rep.Stage.MapName)
		require.Len(t, rep.Players, 3)
		assert.Equal(t, "Second", rep.Players[1].Name)
		assert.Equal(t, uint64(0), rep.Players[0].MUID)
		assert.Equal(t, "Latecomer", rep.Players[2].Name, "late joins use the v6 layout")
		assert.Equal(t, "Unknown_Player(5678)", rep.PlayerName(5678))
	}
}

func TestDecode_V15(t *testing.T) {
	w := wiretest.New().U32(MagicCurrent).U32(versions.V15).
		StageV15("Room", "Dojo", int32(core.GameTypeDuel)).
		I32(1).PlayerV15(true, "Solo", 3, 44).
		Zeros(4)

	rep, err := newTestDecoder(t).Decode(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, core.GameTypeDuel, rep.Stage.GameType)
	require.Len(t, rep.Players, 1)
	assert.Equal(t, uint64(44), rep.Players[0].MUID)
	assert.Empty(t, rep.Commands)
	assert.Empty(t, rep.Events)
	assert.True(t, rep.Header.CaptureTime().IsZero())
}

func TestDecode_Errors(t *testing.T) {
	full := v6Replay(MagicCurrent)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty", nil, core.ErrNotAReplay},
		{"bad magic", wiretest.New().U32(0x12345678).U32(6).Bytes(), core.ErrNotAReplay},
		{"no version", wiretest.New().U32(MagicCurrent).Bytes(), core.ErrTruncatedRecord},
		{"unknown version", wiretest.New().U32(MagicCurrent).U32(5).Bytes(), core.ErrUnsupportedVersion},
		{"header cut", full[:20], core.ErrTruncatedRecord},
		{"stage cut", full[:100], core.ErrTruncatedRecord},
		{"player cut", full[:32+192+4+500], core.ErrTruncatedRecord},
		{"negative count", wiretest.New().ReplayPrefixV6(MagicCurrent, -1).Bytes(), core.ErrInvalidPlayerCount},
		{
			"missing marker",
			wiretest.New().U32(MagicCurrent).U32(versions.V7).LegacyStage("x", 0).I32(1).Bool(true).Zeros(300).Bytes(),
			core.ErrMissingRecordMarker,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := newTestDecoder(t).Decode(tt.data)
			assert.Nil(t, rep)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_UnsupportedVersionNamesSlot(t *testing.T) {
	_, err := newTestDecoder(t).Decode(wiretest.New().U32(MagicCurrent).U32(99).Bytes())
	var uv *core.UnsupportedVersionError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, uint32(99), uv.Version)
	assert.Equal(t, core.SlotHeader, uv.Slot)
}

func TestDecode_NoStreamAfterRoster(t *testing.T) {
	data := wiretest.New().ReplayPrefixV6(MagicCurrent, 1).PlayerV6(true, "Only", 1, 2).Raw(0, 0).Bytes()
	rep, err := newTestDecoder(t).Decode(data)
	require.NoError(t, err)
	assert.Empty(t, rep.Commands)
	assert.Len(t, rep.Players, 1)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "match.gzr")
	require.NoError(t, os.WriteFile(path, v6Replay(MagicCurrent), 0o644))

	d := newTestDecoder(t)
	rep, err := d.DecodeFile(path)
	require.NoError(t, err)
	assert.Len(t, rep.Events, 2)

	_, err = d.DecodeFile(filepath.Join(dir, "missing.gzr"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.gzr")
	require.NoError(t, os.WriteFile(bad, []byte("not a replay"), 0o644))
	_, err = d.DecodeFile(bad)
	assert.ErrorIs(t, err, core.ErrNotAReplay)
	assert.Contains(t, err.Error(), "bad.gzr")
}
