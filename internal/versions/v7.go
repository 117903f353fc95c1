package versions

import "github.com/gzreplay/gzr/internal/schema"

// Version 7 did not change any record layout from version 4.
func registerV7(reg *schema.Registry) {
	reg.Register(V7, schema.Schema{
		Header:     emptyHeader,
		Stage:      LegacyStage,
		Player:     LegacyPlayer,
		JoinPlayer: CharInfoV6,
	})
}
