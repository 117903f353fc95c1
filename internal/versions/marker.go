package versions

import (
	"fmt"

	"github.com/gzreplay/gzr/internal/binreader"
	"github.com/gzreplay/gzr/internal/roster"
	"github.com/gzreplay/gzr/pkg/core"
)

// Versions 4 and 7 share the marker-delimited layout.
const (
	LegacyStageSize = 68

	// LegacyPlayerPad follows every character info record.
	LegacyPlayerPad = 90 + 83

	legacyEquipSlots = 12
)

type legacyCharInfo struct {
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
	Equipment        [legacyEquipSlots]uint32
	UserGrade        uint32
	ClanCLID         uint32
	_                [4]byte
	UID              uint32
}

// LegacyStage reads the 68-byte stage record. Only the map fields are kept.
func LegacyStage(r *binreader.Reader) (core.Stage, error) {
	start := r.Offset()

	var ids struct {
		StageUID uint32
		StageID  uint32
		MapName  [32]byte
		MapIndex int8
	}
	if err := r.Struct(&ids); err != nil {
		return core.Stage{}, err
	}

	// align to 4 from the record start
	if pad := (4 - (r.Offset()-start)%4) % 4; pad > 0 {
		if err := r.Skip(pad); err != nil {
			return core.Stage{}, err
		}
	}
	// 5 × int32 + 3 × bool, not decoded
	if err := r.Skip(5*4 + 3); err != nil {
		return core.Stage{}, err
	}
	if tail := LegacyStageSize - (r.Offset() - start); tail > 0 {
		if err := r.Skip(tail); err != nil {
			return core.Stage{}, err
		}
	}

	return core.Stage{
		StageID:  ids.StageID,
		MapName:  binreader.CString(ids.MapName[:]),
		MapIndex: int32(ids.MapIndex),
	}, nil
}

// LegacyPlayer reads a marker-delimited roster record. The muid is not
// present in this layout and stays zero.
func LegacyPlayer(r *binreader.Reader) (core.Player, error) {
	hero, err := r.Bool()
	if err != nil {
		return core.Player{}, fmt.Errorf("hero flag: %w", err)
	}

	rec, err := roster.ScanRecord(r, roster.RecordMarker)
	if err != nil {
		return core.Player{}, err
	}

	var w legacyCharInfo
	if err := binreader.New(rec).Struct(&w); err != nil {
		return core.Player{}, fmt.Errorf("character info (%d bytes): %w", len(rec), err)
	}

	if err := r.Skip(LegacyPlayerPad); err != nil {
		return core.Player{}, fmt.Errorf("player trailer: %w", err)
	}

	p := core.Player{
		IsHero:           hero,
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
		ClanCLID:         w.ClanCLID,
		UID:              w.UID,
	}
	w.Stats.apply(&p)
	return p, nil
}
