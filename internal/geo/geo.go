// Package geo decodes the compressed vector encodings used in movement payloads
// and builds movement tracks from them.
package geo

import (
	"math"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/pkg/core"
)

// PackedDirectionSize is the wire width of a packed direction.
const PackedDirectionSize = 2

// ShortVectorScale is the fixed-point unit of short vectors.
const ShortVectorScale = 100.0

// Up is the direction used when no packed direction is available.
var Up = core.Vec3{X: 0, Y: 0, Z: 1}

// UnpackDirection expands a yaw/pitch byte pair into a unit vector.
// Anything other than exactly two bytes yields Up.
func UnpackDirection(b []byte) core.Vec3 {
	if len(b) != PackedDirectionSize {
		return Up
	}
	yaw := float64(b[0]) / 255 * 2 * math.Pi
	pitch := (float64(b[1])/255 - 0.5) * math.Pi
	return core.Vec3{
		X: math.Cos(yaw) * math.Cos(pitch),
		Y: math.Sin(yaw) * math.Cos(pitch),
		Z: math.Sin(pitch),
	}
}

// ReadDirection reads a packed direction. When fewer than two bytes remain it
// returns Up and leaves the cursor where it was.
func ReadDirection(r *binreader.Reader) core.Vec3 {
	b, err := r.Bytes(PackedDirectionSize)
	if err != nil {
		return Up
	}
	return UnpackDirection(b)
}

// ShortVector scales three fixed-point shorts to world units.
func ShortVector(x, y, z int16) core.Vec3 {
	return core.Vec3{
		X: float64(x) / ShortVectorScale,
		Y: float64(y) / ShortVectorScale,
		Z: float64(z) / ShortVectorScale,
	}
}

// ReadShortVector reads three int16 values and scales them.
func ReadShortVector(r *binreader.Reader) (core.Vec3, error) {
	start := r.Offset()
	var v [3]int16
	for i := range v {
		n, err := r.Int16()
		if err != nil {
			r.Seek(start)
			return core.Vec3{}, err
		}
		v[i] = n
	}
	return ShortVector(v[0], v[1], v[2]), nil
}

// ReadFloatVector reads three float32 values.
func ReadFloatVector(r *binreader.Reader) (core.Vec3, error) {
	start := r.Offset()
	var v [3]float32
	for i := range v {
		f, err := r.Float32()
		if err != nil {
			r.Seek(start)
			return core.Vec3{}, err
		}
		v[i] = f
	}
	return core.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}, nil
}
