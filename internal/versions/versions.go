// Package versions holds the record layouts of each supported replay format
// version and registers them with a schema registry.
package versions

import (
	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/schema"
	"github.com/gzreplay/gzr/pkg/core"
)

// Supported format versions.
const (
	V4  uint32 = 4
	V6  uint32 = 6
	V7  uint32 = 7
	V15 uint32 = 15
)

// TrailerSize is the reserved block after uid and muid in fixed-layout player records.
const TrailerSize = 293

// Register installs every known version into reg.
func Register(reg *schema.Registry) {
	registerV4(reg)
	registerV6(reg)
	registerV7(reg)
	registerV15(reg)
}

// NewRegistry returns a registry populated with every known version.
func NewRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	Register(reg)
	return reg
}

func emptyHeader(*binreader.Reader, *core.Header) error {
	return nil
}

// stats9 is prize, hp, ap, max weight, safe falls, fr, cr, er, wr.
type stats9 [9]uint16

func (s stats9) apply(p *core.Player) {
	p.Prize, p.HP, p.AP = s[0], s[1], s[2]
	p.MaxWeight, p.SafeFalls = s[3], s[4]
	p.FR, p.CR, p.ER, p.WR = s[5], s[6], s[7], s[8]
}

// readTrailer reads uid and muid and skips the reserved block.
func readTrailer(r *binreader.Reader, p *core.Player) error {
	var t struct {
		UID  uint32
		MUID uint32
	}
	if err := r.Struct(&t); err != nil {
		return err
	}
	if err := r.Skip(TrailerSize); err != nil {
		return err
	}
	p.UID = t.UID
	p.MUID = uint64(t.MUID)
	return nil
}
