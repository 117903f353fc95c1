package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&ReplayRecord{},
	&PlayerRecord{},
	&EventRecord{},
	&WarningRecord{},
	&PlayerTrack{},
}

// ReplayRecord is one decoded capture file.
type ReplayRecord struct {
	ID           string    `json:"id" gorm:"primarykey;size:36"`
	CreatedAt    time.Time `json:"createdAt"`
	Source       string    `json:"source" gorm:"size:512"`
	Magic        uint32    `json:"magic"`
	Version      uint32    `json:"version" gorm:"index:idx_replay_version"`
	CaptureTime  time.Time `json:"captureTime" gorm:"index:idx_replay_capture_time"`
	BuildVersion string    `json:"buildVersion" gorm:"size:32"`

	StageName  string `json:"stageName" gorm:"size:64"`
	MapName    string `json:"mapName" gorm:"size:32;index:idx_replay_map_name"`
	MapIndex   int32  `json:"mapIndex"`
	GameType   string `json:"gameType" gorm:"size:48"`
	RoundMax   int32  `json:"roundMax"`
	LimitTime  int32  `json:"limitTime"`
	MaxPlayers int32  `json:"maxPlayers"`
	// Stage holds the full rule set, including the fields only later versions carry.
	Stage datatypes.JSON `json:"stage"`

	CommandCount int            `json:"commandCount"`
	EventCount   int            `json:"eventCount"`
	WarningCount int            `json:"warningCount"`
	Summary      datatypes.JSON `json:"summary"`

	Players  []PlayerRecord  `json:"players" gorm:"foreignkey:ReplayID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Events   []EventRecord   `json:"-" gorm:"foreignkey:ReplayID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Warnings []WarningRecord `json:"-" gorm:"foreignkey:ReplayID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tracks   []PlayerTrack   `json:"-" gorm:"foreignkey:ReplayID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*ReplayRecord) TableName() string {
	return "replays"
}

// PlayerRecord is one roster entry of a replay.
type PlayerRecord struct {
	ID       uint   `json:"id" gorm:"primarykey;autoIncrement;"`
	ReplayID string `json:"replayId" gorm:"size:36;index:idx_player_replay_id"`
	Slot     int    `json:"slot"`
	MUID     uint64 `json:"muid" gorm:"index:idx_player_muid"`
	UID      uint32 `json:"uid"`
	IsHero   bool   `json:"isHero"`
	LateJoin bool   `json:"lateJoin"`

	Name      string `json:"name" gorm:"size:32;index:idx_player_name"`
	Clan      string `json:"clan" gorm:"size:16"`
	ClanGrade int32  `json:"clanGrade"`
	Level     uint16 `json:"level"`
	Sex       uint8  `json:"sex"`
	XP        uint32 `json:"xp"`
	BP        int32  `json:"bp"`
	HP        uint16 `json:"hp"`
	AP        uint16 `json:"ap"`

	RankedWins   int32 `json:"rankedWins"`
	RankedLosses int32 `json:"rankedLosses"`
	RankedPoints int32 `json:"rankedPoints"`

	Equipment datatypes.JSON `json:"equipment"`
	DiscordID string         `json:"discordId" gorm:"size:32"`
}

func (*PlayerRecord) TableName() string {
	return "replay_players"
}

// EventRecord is one decoded command. Payload is the event serialised as JSON.
type EventRecord struct {
	ID           uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	ReplayID     string         `json:"replayId" gorm:"size:36;index:idx_event_replay_id"`
	CommandIndex int            `json:"commandIndex"`
	Time         float32        `json:"time"`
	Sender       uint64         `json:"sender" gorm:"index:idx_event_sender"`
	SenderName   string         `json:"senderName" gorm:"size:64"`
	Opcode       uint16         `json:"opcode" gorm:"index:idx_event_opcode"`
	Kind         string         `json:"kind" gorm:"size:32;index:idx_event_kind"`
	Payload      datatypes.JSON `json:"payload"`
}

func (*EventRecord) TableName() string {
	return "replay_events"
}

// WarningRecord is a command that could not be decoded.
type WarningRecord struct {
	ID           uint    `json:"id" gorm:"primarykey;autoIncrement;"`
	ReplayID     string  `json:"replayId" gorm:"size:36;index:idx_warning_replay_id"`
	CommandIndex int     `json:"commandIndex"`
	Time         float32 `json:"time"`
	Opcode       uint16  `json:"opcode"`
	Offset       int     `json:"offset"`
	Message      string  `json:"message" gorm:"size:255"`
}

func (*WarningRecord) TableName() string {
	return "replay_warnings"
}

// PlayerTrack is the movement path of one sender as a LineStringZ.
type PlayerTrack struct {
	ID         uint          `json:"id" gorm:"primarykey;autoIncrement;"`
	ReplayID   string        `json:"replayId" gorm:"size:36;index:idx_track_replay_id"`
	Sender     uint64        `json:"sender"`
	PlayerName string        `json:"playerName" gorm:"size:64"`
	PointCount int           `json:"pointCount"`
	StartTime  float32       `json:"startTime"`
	EndTime    float32       `json:"endTime"`
	Length     float64       `json:"length"`
	Path       geom.Geometry `json:"-" gorm:"type:geometry"`
}

func (*PlayerTrack) TableName() string {
	return "player_tracks"
}
