package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "match.gzr")

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte("replay body"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(in, buf.Bytes(), 0644))

	var stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{in}, &stderr))

	got, err := os.ReadFile(in + RawExt)
	require.NoError(t, err)
	assert.Equal(t, "replay body", string(got))

	out := filepath.Join(dir, "explicit.bin")
	assert.Equal(t, 0, run([]string{"-o", out, in}, &stderr))
	assert.FileExists(t, out)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.gzr")
	require.NoError(t, os.WriteFile(plain, []byte("not zlib"), 0644))

	var stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stderr))
	assert.Contains(t, stderr.String(), "usage: gzrinflate")

	assert.Equal(t, 1, run([]string{plain}, &stderr))
	assert.NoFileExists(t, plain+RawExt)

	assert.Equal(t, 1, run([]string{filepath.Join(dir, "missing.gzr")}, &stderr))
}
