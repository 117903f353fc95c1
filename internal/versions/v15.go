package versions

import (
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/schema"
	"github.com/gzreplay/gzr/pkg/core"
)

// Record sizes of the version 15 layout.
const (
	V15StageSize    = 132
	V15CharInfoSize = 170
	V15PlayerSize   = 472
)

type stageV15 struct {
	_               [8]byte
	MapName         [32]byte
	Name            [64]byte
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
}

type charInfoV15 struct {
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
	BonusRate        float32
	Stats            stats9
	Equipment        [17]uint32
	UserGrade        uint32
	PremiumGrade     uint32
	ClanCLID         uint32
}

func registerV15(reg *schema.Registry) {
	reg.Register(V15, schema.Schema{
		Header:     emptyHeader,
		Stage:      StageV15,
		Player:     PlayerV15,
		JoinPlayer: CharInfoV6,
	})
}

// StageV15 reads the stage fields version 15 is known to carry.
func StageV15(r *binreader.Reader) (core.Stage, error) {
	var w stageV15
	if err := r.Struct(&w); err != nil {
		return core.Stage{}, err
	}
	return core.Stage{
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
	}, nil
}

// CharInfoV15 reads the 170-byte character info record.
func CharInfoV15(r *binreader.Reader) (core.Player, error) {
	var w charInfoV15
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
		BonusRate:        w.BonusRate,
		Equipment:        append([]uint32(nil), w.Equipment[:]...),
		UserGrade:        w.UserGrade,
		PremiumGrade:     w.PremiumGrade,
		ClanCLID:         w.ClanCLID,
	}
	w.Stats.apply(&p)
	return p, nil
}

// PlayerV15 reads a 472-byte roster record.
func PlayerV15(r *binreader.Reader) (core.Player, error) {
	hero, err := r.Bool()
	if err != nil {
		return core.Player{}, fmt.Errorf("hero flag: %w", err)
	}
	p, err := CharInfoV15(r)
	if err != nil {
		return core.Player{}, fmt.Errorf("character info: %w", err)
	}
	p.IsHero = hero
	if err := readTrailer(r, &p); err != nil {
		return core.Player{}, fmt.Errorf("player trailer: %w", err)
	}
	return p, nil
}
