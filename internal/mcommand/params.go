package mcommand

import (
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
)

// ParamType is the wire type of a command parameter.
type ParamType uint8

const (
	ParamInt ParamType = iota
	ParamFloat
	ParamString
	ParamBlob
	ParamShort
	ParamUChar
)

func (p ParamType) String() string {
	switch p {
	case ParamInt:
		return "INT"
	case ParamFloat:
		return "FLOAT"
	case ParamString:
		return "STR"
	case ParamBlob:
		return "BLOB"
	case ParamShort:
		return "SHORT"
	case ParamUChar:
		return "UCHAR"
	}
	return fmt.Sprintf("PARAM(%d)", uint8(p))
}

// Param is one decoded parameter. Only the field matching Type is set.
type Param struct {
	Type  ParamType
	Int   int32
	Uint  uint32 // SHORT and UCHAR
	Float float32
	Str   string
	Blob  []byte
}

// ReadParams decodes params of the given types in order.
// STR and BLOB carry a u16 length prefix.
func ReadParams(r *binreader.Reader, types ...ParamType) ([]Param, error) {
	params := make([]Param, 0, len(types))
	for i, t := range types {
		p := Param{Type: t}
		var err error
		switch t {
		case ParamInt:
			p.Int, err = r.Int32()
		case ParamFloat:
			p.Float, err = r.Float32()
		case ParamString:
			var n uint16
			if n, err = r.Uint16(); err == nil {
				p.Str, err = r.String(int(n))
			}
		case ParamBlob:
			var n uint16
			if n, err = r.Uint16(); err == nil {
				p.Blob, err = r.Bytes(int(n))
			}
		case ParamShort:
			var v uint16
			v, err = r.Uint16()
			p.Uint = uint32(v)
		case ParamUChar:
			var v uint8
			v, err = r.Uint8()
			p.Uint = uint32(v)
		default:
			return nil, fmt.Errorf("param %d: unsupported type %s", i, t)
		}
		if err != nil {
			return nil, fmt.Errorf("param %d (%s): %w", i, t, err)
		}
		params = append(params, p)
	}
	return params, nil
}
