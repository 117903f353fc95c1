package decompress

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestContainer(t *testing.T) {
	payload := []byte{0x8a, 0x30, 0xb1, 0x95, 6, 0, 0, 0}

	tests := []struct {
		name     string
		in       []byte
		want     []byte
		inflated bool
	}{
		{"compressed", deflate(t, payload), payload, true},
		{"raw fallback", payload, payload, false},
		{"empty", []byte{}, []byte{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Container(tt.in)
			assert.Equal(t, tt.inflated, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInflate_Truncated(t *testing.T) {
	z := deflate(t, bytes.Repeat([]byte("gunz"), 256))
	_, err := Inflate(z[:len(z)-6])
	assert.Error(t, err)
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "match.gzr")
	out := filepath.Join(dir, "match.bin")
	require.NoError(t, os.WriteFile(in, deflate(t, []byte("decoded")), 0644))

	var logs bytes.Buffer
	ok := ToFile(zerolog.New(&logs), in, out)
	require.True(t, ok)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("decoded"), got)
}

func TestToFile_FailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.gzr")
	out := filepath.Join(dir, "raw.bin")
	require.NoError(t, os.WriteFile(in, []byte("not zlib"), 0644))

	var logs bytes.Buffer
	ok := ToFile(zerolog.New(&logs), in, out)
	assert.False(t, ok)
	assert.NoFileExists(t, out)
	assert.Contains(t, logs.String(), "Failed to decompress replay")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestToFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "x.bin")
	assert.False(t, ToFile(zerolog.Nop(), filepath.Join(dir, "nope.gzr"), out))
	assert.NoFileExists(t, out)
}
