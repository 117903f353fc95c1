package versions

import "github.com/gzreplay/gzr/internal/schema"

func registerV4(reg *schema.Registry) {
	reg.Register(V4, schema.Schema{
		Header:     emptyHeader,
		Stage:      LegacyStage,
		Player:     LegacyPlayer,
		JoinPlayer: CharInfoV6,
	})
}
