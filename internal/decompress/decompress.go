// Package decompress inflates replay containers.
package decompress

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
	"github.com/rs/zerolog"
)

// Inflate decompresses a whole zlib stream. A stream that does not inflate
// cleanly to the end (bad header, corrupt data, bad checksum) is an error.
func Inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening zlib stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflating: %w", err)
	}
	return out, nil
}

// Container returns the inflated buffer, or data unchanged when it is not
// a zlib stream. The second result reports whether inflation happened.
func Container(data []byte) ([]byte, bool) {
	out, err := Inflate(data)
	if err != nil {
		return data, false
	}
	return out, true
}

// ToFile inflates the file at in and writes the result to out.
// Failures are logged and leave no output file behind.
func ToFile(log zerolog.Logger, in, out string) bool {
	raw, err := os.ReadFile(in)
	if err != nil {
		log.Error().Err(err).Str("input", in).Msg("Failed to read replay")
		return false
	}

	data, err := Inflate(raw)
	if err != nil {
		log.Error().Err(err).Str("input", in).Msg("Failed to decompress replay")
		return false
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), filepath.Base(out)+".*.tmp")
	if err != nil {
		log.Error().Err(err).Str("output", out).Msg("Failed to create output file")
		return false
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmpName)
		log.Error().AnErr("write", werr).AnErr("close", cerr).Str("output", out).Msg("Failed to write output file")
		return false
	}

	if err := os.Rename(tmpName, out); err != nil {
		os.Remove(tmpName)
		log.Error().Err(err).Str("output", out).Msg("Failed to move output file into place")
		return false
	}

	log.Info().Str("input", in).Str("output", out).Int("bytes", len(data)).Msg("Replay decompressed")
	return true
}
