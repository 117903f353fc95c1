package wiretest

// Values written by the character-info fixtures, so tests can assert them.
const (
	FixtureClanGrade    = 1
	FixtureContribution = 2
	FixtureCharNum      = 3
	FixtureXP           = 1000
	FixtureBP           = 500
	FixtureGems         = 7
	FixtureBonusRate    = 1.5
	FixtureClanCLID     = 99
	FixtureEquipBase    = 100
)

// LegacyMarker ends legacy character-info records.
var LegacyMarker = []byte{0x7a, 0x44, 0x00, 0x00, 0x7a, 0x44}

func (w *Buffer) charInfoHead(name, clan string, level uint16) *Buffer {
	return w.Str(name, 32).Str(clan, 16).
		I32(FixtureClanGrade).U16(FixtureContribution).U8(FixtureCharNum).U16(level).
		U8(1).U8(2).U8(3).
		U32(FixtureXP).I32(FixtureBP)
}

func (w *Buffer) stats(n int) *Buffer {
	for i := 1; i <= n; i++ {
		w.U16(uint16(i))
	}
	return w
}

func (w *Buffer) equipment(n int) *Buffer {
	for i := 0; i < n; i++ {
		w.U32(uint32(FixtureEquipBase + i))
	}
	return w
}

// CharInfoV6 writes a 472-byte character info record.
func (w *Buffer) CharInfoV6(name, clan string, level uint16) *Buffer {
	w.charInfoHead(name, clan, level).I32(FixtureGems).F32(FixtureBonusRate).
		stats(9).U16(10).
		I32(11).I32(12).I32(13).I32(14).
		equipment(14).
		U32(1).U32(2).U32(FixtureClanCLID)
	return w.Str("discord#1", 32).Str("https://cdn.example/a.png", 256).U32(0xabc)
}

// PlayerV6 writes a 774-byte roster record.
func (w *Buffer) PlayerV6(hero bool, name string, uid, muid uint32) *Buffer {
	return w.Bool(hero).CharInfoV6(name, "Clan", 20).U32(uid).U32(muid).Zeros(293)
}

// StageV6 writes a 192-byte stage record.
func (w *Buffer) StageV6(name, mapName string, gameType int32) *Buffer {
	w.U64(0x1122334455667788).Str(name, 64).Str(mapName, 32).U32(4).
		I32(gameType).I32(10).I32(30).I32(0).I32(16).
		Bool(true).Bool(false).Bool(true).Bool(false).
		U8(0xfe).Bool(true).I32(100).I32(50).
		Bool(true).Bool(false).Bool(true).Bool(false)
	return w.Zeros(46)
}

// HeaderV6 writes the 24 bytes that follow magic and version.
func (w *Buffer) HeaderV6(ts uint64, major, minor, patch, rev uint32) *Buffer {
	return w.U64(ts).U32(major).U32(minor).U32(patch).U32(rev)
}

// CharInfoV15 writes a 170-byte character info record.
func (w *Buffer) CharInfoV15(name, clan string, level uint16) *Buffer {
	return w.charInfoHead(name, clan, level).F32(FixtureBonusRate).
		stats(9).equipment(17).
		U32(1).U32(2).U32(FixtureClanCLID)
}

// PlayerV15 writes a 472-byte roster record.
func (w *Buffer) PlayerV15(hero bool, name string, uid, muid uint32) *Buffer {
	return w.Bool(hero).CharInfoV15(name, "Clan", 30).U32(uid).U32(muid).Zeros(293)
}

// StageV15 writes the 132 bytes read for a version 15 stage.
func (w *Buffer) StageV15(name, mapName string, gameType int32) *Buffer {
	return w.Zeros(8).Str(mapName, 32).Str(name, 64).U32(2).
		I32(gameType).I32(5).I32(20).I32(0).I32(8).
		Bool(false).Bool(true).Bool(false).Bool(true)
}

// LegacyStage writes a 68-byte version 4/7 stage record.
func (w *Buffer) LegacyStage(mapName string, mapIndex int8) *Buffer {
	start := w.Len()
	w.U32(1).U32(42).Str(mapName, 32).U8(uint8(mapIndex))
	return w.PadTo(start + 68)
}

// LegacyPlayer writes a marker-delimited roster record followed by its pad.
func (w *Buffer) LegacyPlayer(hero bool, name string, uid uint32) *Buffer {
	w.Bool(hero).charInfoHead(name, "Old", 5).F32(FixtureBonusRate).
		stats(9).equipment(12).
		U32(1).U32(FixtureClanCLID).Zeros(4).U32(uid)
	return w.Raw(LegacyMarker...).U8(0).Zeros(90 + 83)
}

// JoinBattlePayload builds a join notification: muid at 22, v6 char info at 34.
func JoinBattlePayload(muid uint32, name string) []byte {
	body := New().Zeros(22 - 5).U32(muid).Zeros(34 - 26).CharInfoV6(name, "Late", 12)
	return Payload(1402, 0, body.Bytes())
}

// ReplayPrefixV6 writes magic, version 6, header, stage and the player count.
// Player records and the stream follow.
func (w *Buffer) ReplayPrefixV6(magic uint32, players int32) *Buffer {
	return w.U32(magic).U32(6).HeaderV6(1700000000, 1, 0, 2, 3).
		StageV6("Stage", "Mansion", 1).I32(players)
}
