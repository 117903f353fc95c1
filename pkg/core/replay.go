// pkg/core/replay.go
package core

import (
	"fmt"
	"time"
)

// Replay is a fully decoded capture.
type Replay struct {
	Magic    uint32
	Header   Header
	Stage    Stage
	Players  []Player
	Commands []Command
	Events   []EventRecord
	Warnings []Warning
}

// Header carries the format version and any build/capture metadata the version stores.
type Header struct {
	Version   uint32
	Timestamp uint64 // unix seconds, zero when the version does not store it
	Major     uint32
	Minor     uint32
	Patch     uint32
	Revision  uint32
}

// CaptureTime returns the capture timestamp, or the zero time when absent.
func (h Header) CaptureTime() time.Time {
	if h.Timestamp == 0 {
		return time.Time{}
	}
	return time.Unix(int64(h.Timestamp), 0).UTC()
}

// BuildVersion renders major.minor.patch.revision.
func (h Header) BuildVersion() string {
	return fmt.Sprintf("%d.%d.%d.%d", h.Major, h.Minor, h.Patch, h.Revision)
}

// Stage is the match configuration.
type Stage struct {
	StageMUID  uint64
	StageID    uint32
	Name       string
	MapName    string
	MapIndex   int32
	GameType   GameType
	RoundMax   int32
	LimitTime  int32
	LimitLevel int32
	MaxPlayers int32

	TeamKill        bool
	TeamWinThePoint bool
	ForcedEntry     bool
	AutoTeamBalance bool

	// extended rule set, later versions only
	Netcode     uint8
	ForceHPAP   bool
	HP          int32
	AP          int32
	NoFlip      bool
	SwordsOnly  bool
	RefinedMode bool
	TeamRotate  bool
}

// Player is one roster entry.
// Slot is the position in the roster; MUID is the match-unique id used by the command log.
// MUID is zero when the record format does not carry it.
type Player struct {
	Slot     int
	IsHero   bool
	LateJoin bool

	Name             string
	Clan             string
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

	Prize       uint16
	HP          uint16
	AP          uint16
	MaxWeight   uint16
	SafeFalls   uint16
	FR          uint16
	CR          uint16
	ER          uint16
	WR          uint16
	RoundDamage uint16

	RankedWins   int32
	RankedLosses int32
	RankedPoints int32
	RankedRank   int32

	Equipment []uint32

	UserGrade        uint32
	PremiumGrade     uint32
	ClanCLID         uint32
	DiscordID        string
	DiscordAvatarURL string
	AvatarChecksum   uint32

	UID  uint32
	MUID uint64
}

// Command is one transport record from the capture.
type Command struct {
	Time    float32
	Sender  uint32
	Size    int32
	Payload []byte
}

// EventRecord is a decoded event aligned with the command it came from.
type EventRecord struct {
	Index  int // index into Replay.Commands
	Time   float32
	Sender uint64
	Opcode Opcode
	Event  Event
}

// Warning is a non-fatal, per-command decode failure.
type Warning struct {
	Index  int
	Time   float32
	Opcode Opcode
	Offset int
	Err    error
}

func (w Warning) Error() string {
	return fmt.Sprintf("command %d (opcode %d, offset %d): %v", w.Index, w.Opcode, w.Offset, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// PlayerByMUID returns the roster entry for a resolved match-unique id.
func (r *Replay) PlayerByMUID(muid uint64) (Player, bool) {
	if muid == 0 {
		return Player{}, false
	}
	for _, p := range r.Players {
		if p.MUID == muid {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerName resolves a match-unique id to a player name.
// Unknown ids produce a placeholder instead of failing.
func (r *Replay) PlayerName(muid uint64) string {
	if p, ok := r.PlayerByMUID(muid); ok {
		return p.Name
	}
	return fmt.Sprintf("Unknown_Player(%d)", muid)
}

// Summary counts decoded events per kind.
func (r *Replay) Summary() map[string]int {
	counts := make(map[string]int)
	for _, e := range r.Events {
		counts[e.Event.Kind()]++
	}
	return counts
}
