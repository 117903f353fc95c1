package parser

import (
	"errors"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/mcommand"
	"github.com/gzreplay/gzr/pkg/core"
)

// shotgunDamageOffset locates the damage info of the primary target within the blob.
const shotgunDamageOffset = 14

type shotgunDamage struct {
	Target        uint32
	Damage        int32
	PiercingRatio float32
	DamageType    int32
}

// ParseShotgun decodes a shotgun volley. A volley with an empty blob or no
// damage record is a miss.
func (p *Parser) ParseShotgun(payload []byte) (core.ShotgunHit, error) {
	r, err := readerAt(core.OpShotgun, payload, paramsOffset)
	if err != nil {
		return core.ShotgunHit{}, err
	}
	params, err := mcommand.ReadParams(r, mcommand.ParamFloat, mcommand.ParamShort, mcommand.ParamBlob)
	if err != nil {
		return core.ShotgunHit{}, malformed(core.OpShotgun, r, err)
	}

	hit := core.ShotgunHit{
		Time:    params[0].Float,
		SelType: uint16(params[1].Uint),
		Result:  core.Missed,
	}

	blob := params[2].Blob
	if len(blob) == 0 {
		return hit, nil
	}
	blobStart := r.Offset() - len(blob)
	arr, err := mcommand.ParseArray(blob)
	if err != nil {
		return core.ShotgunHit{}, &core.MalformedPayloadError{Opcode: core.OpShotgun, Offset: blobStart, Err: err}
	}
	if _, err := arr.Offset(0); err != nil {
		if errors.Is(err, core.ErrIndexOutOfRange) {
			return hit, nil
		}
		return core.ShotgunHit{}, &core.MalformedPayloadError{Opcode: core.OpShotgun, Offset: blobStart, Err: err}
	}

	br := binreader.New(blob)
	var d shotgunDamage
	if br.Seek(shotgunDamageOffset) != nil || br.Struct(&d) != nil {
		p.logger.Trace().Int("blob", len(blob)).Msg("shotgun blob too short for damage info, treating as miss")
		return hit, nil
	}

	hit.Result = core.ShotgunResult{
		Hit:           true,
		Target:        d.Target,
		Damage:        d.Damage,
		PiercingRatio: d.PiercingRatio,
		DamageType:    d.DamageType,
	}
	return hit, nil
}
