package parser

import (
	"github.com/gzreplay/gzr/pkg/core"
)

// Round state fields sit at 6, 13, 17 and 21; the gaps are not decoded.
type roundStateFields struct {
	StageID uint32
	_       [3]byte
	Round   uint32
	State   uint32
	Result  uint32
}

const roundStateOffset = 6

// ParseRoundState decodes a round transition.
func (p *Parser) ParseRoundState(payload []byte) (core.RoundStateChange, error) {
	var f roundStateFields
	if err := fields(core.OpRoundState, payload, roundStateOffset, &f); err != nil {
		return core.RoundStateChange{}, err
	}
	return core.RoundStateChange{
		StageID: f.StageID,
		Round:   f.Round,
		State:   core.RoundState(f.State),
		Result:  core.RoundResult(f.Result),
	}, nil
}
