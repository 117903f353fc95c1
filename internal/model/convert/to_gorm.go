// Package convert maps decoded replays onto the GORM table models.
package convert

import (
	"encoding/json"

	"github.com/gzreplay/gzr/internal/cache"
	"github.com/gzreplay/gzr/internal/geo"
	"github.com/gzreplay/gzr/internal/model"
	"github.com/gzreplay/gzr/internal/storage"
	"github.com/gzreplay/gzr/pkg/core"
	"gorm.io/datatypes"
)

const maxWarningLen = 255

// toJSON marshals v for a JSON column, falling back to def on failure.
func toJSON(v any, def string) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON(def)
	}
	return datatypes.JSON(data)
}

// CoreToReplay converts the replay header and stage. Child rows are not filled.
func CoreToReplay(id, source string, rep *core.Replay) model.ReplayRecord {
	return model.ReplayRecord{
		ID:           id,
		Source:       source,
		Magic:        rep.Magic,
		Version:      rep.Header.Version,
		CaptureTime:  rep.Header.CaptureTime(),
		BuildVersion: rep.Header.BuildVersion(),
		StageName:    rep.Stage.Name,
		MapName:      rep.Stage.MapName,
		MapIndex:     rep.Stage.MapIndex,
		GameType:     rep.Stage.GameType.String(),
		RoundMax:     rep.Stage.RoundMax,
		LimitTime:    rep.Stage.LimitTime,
		MaxPlayers:   rep.Stage.MaxPlayers,
		Stage:        toJSON(rep.Stage, "{}"),
		CommandCount: len(rep.Commands),
		EventCount:   len(rep.Events),
		WarningCount: len(rep.Warnings),
		Summary:      toJSON(rep.Summary(), "{}"),
	}
}

// CoreToPlayer converts a roster entry.
func CoreToPlayer(replayID string, p core.Player) model.PlayerRecord {
	equipment := datatypes.JSON("[]")
	if len(p.Equipment) > 0 {
		equipment = toJSON(p.Equipment, "[]")
	}
	return model.PlayerRecord{
		ReplayID:     replayID,
		Slot:         p.Slot,
		MUID:         p.MUID,
		UID:          p.UID,
		IsHero:       p.IsHero,
		LateJoin:     p.LateJoin,
		Name:         p.Name,
		Clan:         p.Clan,
		ClanGrade:    p.ClanGrade,
		Level:        p.Level,
		Sex:          p.Sex,
		XP:           p.XP,
		BP:           p.BP,
		HP:           p.HP,
		AP:           p.AP,
		RankedWins:   p.RankedWins,
		RankedLosses: p.RankedLosses,
		RankedPoints: p.RankedPoints,
		Equipment:    equipment,
		DiscordID:    p.DiscordID,
	}
}

// CoreToEvent converts a decoded event. The event value itself becomes the JSON
// payload; values JSON cannot hold (NaN from a corrupt float) leave it empty.
func CoreToEvent(replayID string, rec core.EventRecord, players *cache.PlayerCache) model.EventRecord {
	return model.EventRecord{
		ReplayID:     replayID,
		CommandIndex: rec.Index,
		Time:         rec.Time,
		Sender:       rec.Sender,
		SenderName:   players.Name(rec.Sender),
		Opcode:       uint16(rec.Opcode),
		Kind:         rec.Event.Kind(),
		Payload:      toJSON(rec.Event, "{}"),
	}
}

// CoreToWarning converts a per-command decode failure.
func CoreToWarning(replayID string, w core.Warning) model.WarningRecord {
	msg := ""
	if w.Err != nil {
		msg = w.Err.Error()
	}
	if len(msg) > maxWarningLen {
		msg = msg[:maxWarningLen]
	}
	return model.WarningRecord{
		ReplayID:     replayID,
		CommandIndex: w.Index,
		Time:         w.Time,
		Opcode:       uint16(w.Opcode),
		Offset:       w.Offset,
		Message:      msg,
	}
}

// TrackToGorm converts a movement track to a LineStringZ row.
func TrackToGorm(replayID string, tr geo.Track, players *cache.PlayerCache) model.PlayerTrack {
	out := model.PlayerTrack{
		ReplayID:   replayID,
		Sender:     tr.Sender,
		PlayerName: players.Name(tr.Sender),
		PointCount: len(tr.Points),
		Length:     tr.Length(),
		Path:       tr.LineString().AsGeometry(),
	}
	if n := len(tr.Times); n > 0 {
		out.StartTime = tr.Times[0]
		out.EndTime = tr.Times[n-1]
	}
	return out
}

// ItemToGorm converts a whole replay, children included, ready for a single Create.
func ItemToGorm(item *storage.Item) model.ReplayRecord {
	id := item.ID.String()
	rep := item.Replay
	players := cache.FromRoster(rep.Players)

	out := CoreToReplay(id, item.Source, rep)

	out.Players = make([]model.PlayerRecord, 0, len(rep.Players))
	for _, p := range rep.Players {
		out.Players = append(out.Players, CoreToPlayer(id, p))
	}

	out.Events = make([]model.EventRecord, 0, len(rep.Events))
	for _, rec := range rep.Events {
		out.Events = append(out.Events, CoreToEvent(id, rec, players))
	}

	out.Warnings = make([]model.WarningRecord, 0, len(rep.Warnings))
	for _, w := range rep.Warnings {
		out.Warnings = append(out.Warnings, CoreToWarning(id, w))
	}

	out.Tracks = make([]model.PlayerTrack, 0, len(item.Tracks))
	for _, tr := range item.Tracks {
		out.Tracks = append(out.Tracks, TrackToGorm(id, tr, players))
	}

	return out
}
