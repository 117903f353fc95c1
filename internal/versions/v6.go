package versions

import (
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/schema"
	"github.com/gzreplay/gzr/pkg/core"
)

// Record sizes of the version 6 layout.
const (
	V6HeaderEnd    = 32
	V6StageSize    = 192
	V6CharInfoSize = 472
	V6PlayerSize   = 774
)

type headerV6 struct {
	Timestamp uint64
	Major     uint32
	Minor     uint32
	Patch     uint32
	Revision  uint32
}

type stageV6 struct {
	StageMUID       uint64
	Name            [64]byte
	MapName         [32]byte
	MapIndex        uint32
	GameType        int32
	RoundMax        int32
	LimitTime       int32
	LimitLevel      int32
	MaxPlayers      int32
	TeamKill        bool
	TeamWinThePoint bool
	ForcedEntry     bool
	AutoTeamBalance bool
	Netcode         uint8
	ForceHPAP       bool
	HP              int32
	AP              int32
	NoFlip          bool
	SwordsOnly      bool
	RefinedMode     bool
	TeamRotate      bool
	_               [46]byte
}

type charInfoV6 struct {
	Name             [32]byte
	Clan             [16]byte
	ClanGrade        int32
	ClanContribution uint16
	CharNum          int8
	Level            uint16
	Sex              uint8
	Hair             uint8
	Face             uint8
	XP               uint32
	BP               int32
	Gems             int32
	BonusRate        float32
	Stats            stats9
	RoundDamage      uint16
	RankedWins       int32
	RankedLosses     int32
	RankedPoints     int32
	RankedRank       int32
	Equipment        [14]uint32
	UserGrade        uint32
	PremiumGrade     uint32
	ClanCLID         uint32
	DiscordID        [32]byte
	DiscordAvatarURL [256]byte
	AvatarChecksum   uint32
}

func registerV6(reg *schema.Registry) {
	reg.Register(V6, schema.Schema{
		Header:     HeaderV6,
		Stage:      StageV6,
		Player:     PlayerV6,
		JoinPlayer: CharInfoV6,
	})
}

// HeaderV6 reads capture time and client build version.
func HeaderV6(r *binreader.Reader, h *core.Header) error {
	var w headerV6
	if err := r.Struct(&w); err != nil {
		return err
	}
	h.Timestamp = w.Timestamp
	h.Major, h.Minor, h.Patch, h.Revision = w.Major, w.Minor, w.Patch, w.Revision
	return nil
}

// StageV6 reads the 192-byte stage settings node.
func StageV6(r *binreader.Reader) (core.Stage, error) {
	var w stageV6
	if err := r.Struct(&w); err != nil {
		return core.Stage{}, err
	}
	return core.Stage{
		StageMUID:       w.StageMUID,
		Name:            binreader.CString(w.Name[:]),
		MapName:         binreader.CString(w.MapName[:]),
		MapIndex:        int32(w.MapIndex),
		GameType:        core.GameType(w.GameType),
		RoundMax:        w.RoundMax,
		LimitTime:       w.LimitTime,
		LimitLevel:      w.LimitLevel,
		MaxPlayers:      w.MaxPlayers,
		TeamKill:        w.TeamKill,
		TeamWinThePoint: w.TeamWinThePoint,
		ForcedEntry:     w.ForcedEntry,
		AutoTeamBalance: w.AutoTeamBalance,
		Netcode:         w.Netcode & 0x03,
		ForceHPAP:       w.ForceHPAP,
		HP:              w.HP,
		AP:              w.AP,
		NoFlip:          w.NoFlip,
		SwordsOnly:      w.SwordsOnly,
		RefinedMode:     w.RefinedMode,
		TeamRotate:      w.TeamRotate,
	}, nil
}

// CharInfoV6 reads the 472-byte character info record.
func CharInfoV6(r *binreader.Reader) (core.Player, error) {
	var w charInfoV6
	if err := r.Struct(&w); err != nil {
		return core.Player{}, err
	}
	p := core.Player{
		Name:             binreader.CString(w.Name[:]),
		Clan:             binreader.CString(w.Clan[:]),
		ClanGrade:        w.ClanGrade,
		ClanContribution: w.ClanContribution,
		CharNum:          w.CharNum,
		Level:            w.Level,
		Sex:              w.Sex,
		Hair:             w.Hair,
		Face:             w.Face,
		XP:               w.XP,
		BP:               w.BP,
		Gems:             w.Gems,
		BonusRate:        w.BonusRate,
		RoundDamage:      w.RoundDamage,
		RankedWins:       w.RankedWins,
		RankedLosses:     w.RankedLosses,
		RankedPoints:     w.RankedPoints,
		RankedRank:       w.RankedRank,
		Equipment:        append([]uint32(nil), w.Equipment[:]...),
		UserGrade:        w.UserGrade,
		PremiumGrade:     w.PremiumGrade,
		ClanCLID:         w.ClanCLID,
		DiscordID:        binreader.CString(w.DiscordID[:]),
		DiscordAvatarURL: binreader.CString(w.DiscordAvatarURL[:]),
		AvatarChecksum:   w.AvatarChecksum,
	}
	w.Stats.apply(&p)
	return p, nil
}

// PlayerV6 reads a 774-byte roster record: hero flag, character info,
// uid, muid and the reserved trailer.
func PlayerV6(r *binreader.Reader) (core.Player, error) {
	hero, err := r.Bool()
	if err != nil {
		return core.Player{}, fmt.Errorf("hero flag: %w", err)
	}
	p, err := CharInfoV6(r)
	if err != nil {
		return core.Player{}, fmt.Errorf("character info: %w", err)
	}
	p.IsHero = hero
	if err := readTrailer(r, &p); err != nil {
		return core.Player{}, fmt.Errorf("player trailer: %w", err)
	}
	return p, nil
}
