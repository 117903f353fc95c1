package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gzreplay/gzr/internal/cache"
	"github.com/gzreplay/gzr/internal/storage"
	"github.com/gzreplay/gzr/internal/util"
	"github.com/gzreplay/gzr/pkg/core"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Export codecs
const (
	CodecGzip = "gzip"
	CodecZstd = "zstd"
)

// ReplayExport is the root JSON structure
type ReplayExport struct {
	ID       string         `json:"id"`
	Source   string         `json:"source"`
	Magic    uint32         `json:"magic"`
	Header   HeaderJSON     `json:"header"`
	Stage    core.Stage     `json:"stage"`
	Players  []PlayerJSON   `json:"players"`
	Commands int            `json:"commands"`
	Summary  map[string]int `json:"summary"`
	Events   []EventJSON    `json:"events"`
	Warnings []WarningJSON  `json:"warnings"`
	Tracks   []TrackJSON    `json:"tracks"`
}

// HeaderJSON is the format version and build metadata
type HeaderJSON struct {
	Version      uint32     `json:"version"`
	CaptureTime  *time.Time `json:"captureTime,omitempty"`
	BuildVersion string     `json:"buildVersion"`
}

// PlayerJSON is one roster entry
type PlayerJSON struct {
	Slot      int      `json:"slot"`
	MUID      uint64   `json:"muid"`
	UID       uint32   `json:"uid"`
	Name      string   `json:"name"`
	Clan      string   `json:"clan,omitempty"`
	Level     uint16   `json:"level"`
	IsHero    bool     `json:"isHero"`
	LateJoin  bool     `json:"lateJoin"`
	HP        uint16   `json:"hp"`
	AP        uint16   `json:"ap"`
	Equipment []uint32 `json:"equipment"`
}

// EventJSON is a decoded event tagged with its kind
type EventJSON struct {
	Index      int         `json:"index"`
	Time       float32     `json:"time"`
	Sender     uint64      `json:"sender"`
	SenderName string      `json:"senderName"`
	Opcode     core.Opcode `json:"opcode"`
	OpcodeName string      `json:"opcodeName"`
	Kind       string      `json:"kind"`
	Data       core.Event  `json:"data"`
}

// WarningJSON is a command that failed to decode
type WarningJSON struct {
	Index  int         `json:"index"`
	Time   float32     `json:"time"`
	Opcode core.Opcode `json:"opcode"`
	Offset int         `json:"offset"`
	Error  string      `json:"error"`
}

// TrackJSON is the movement path of one sender
type TrackJSON struct {
	Sender uint64       `json:"sender"`
	Name   string       `json:"name"`
	Length float64      `json:"length"`
	Points [][3]float64 `json:"points"`
	Times  []float32    `json:"times"`
}

// BuildExport assembles the export document for item.
func BuildExport(item *storage.Item) ReplayExport {
	rep := item.Replay
	players := cache.FromRoster(rep.Players)

	export := ReplayExport{
		ID:     item.ID.String(),
		Source: item.Source,
		Magic:  rep.Magic,
		Header: HeaderJSON{
			Version:      rep.Header.Version,
			BuildVersion: rep.Header.BuildVersion(),
		},
		Stage:    rep.Stage,
		Players:  make([]PlayerJSON, 0, len(rep.Players)),
		Commands: len(rep.Commands),
		Summary:  rep.Summary(),
		Events:   make([]EventJSON, 0, len(rep.Events)),
		Warnings: make([]WarningJSON, 0, len(rep.Warnings)),
		Tracks:   make([]TrackJSON, 0, len(item.Tracks)),
	}
	if ts := rep.Header.CaptureTime(); !ts.IsZero() {
		export.Header.CaptureTime = &ts
	}

	for _, p := range rep.Players {
		export.Players = append(export.Players, PlayerJSON{
			Slot:      p.Slot,
			MUID:      p.MUID,
			UID:       p.UID,
			Name:      p.Name,
			Clan:      p.Clan,
			Level:     p.Level,
			IsHero:    p.IsHero,
			LateJoin:  p.LateJoin,
			HP:        p.HP,
			AP:        p.AP,
			Equipment: p.Equipment,
		})
	}

	for _, rec := range rep.Events {
		if !finite(float64(rec.Time)) || !finiteEvent(rec.Event) {
			continue
		}
		export.Events = append(export.Events, EventJSON{
			Index:      rec.Index,
			Time:       rec.Time,
			Sender:     rec.Sender,
			SenderName: players.Name(rec.Sender),
			Opcode:     rec.Opcode,
			OpcodeName: rec.Opcode.String(),
			Kind:       rec.Event.Kind(),
			Data:       rec.Event,
		})
	}

	for _, w := range rep.Warnings {
		wj := WarningJSON{Index: w.Index, Opcode: w.Opcode, Offset: w.Offset}
		if finite(float64(w.Time)) {
			wj.Time = w.Time
		}
		if w.Err != nil {
			wj.Error = w.Err.Error()
		}
		export.Warnings = append(export.Warnings, wj)
	}

	for _, tr := range item.Tracks {
		tj := TrackJSON{
			Sender: tr.Sender,
			Name:   players.Name(tr.Sender),
			Length: tr.Length(),
			Points: make([][3]float64, 0, len(tr.Points)),
			Times:  make([]float32, 0, len(tr.Times)),
		}
		for i, p := range tr.Points {
			if !finite(p.X) || !finite(p.Y) || !finite(p.Z) || !finite(float64(tr.Times[i])) {
				continue
			}
			tj.Points = append(tj.Points, [3]float64{p.X, p.Y, p.Z})
			tj.Times = append(tj.Times, tr.Times[i])
		}
		if !finite(tj.Length) {
			tj.Length = 0
		}
		export.Tracks = append(export.Tracks, tj)
	}

	return export
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// finiteEvent reports whether ev survives JSON encoding. Corrupt captures can
// decode NaN floats, which encoding/json rejects.
func finiteEvent(ev core.Event) bool {
	_, err := json.Marshal(ev)
	return err == nil
}

// ExportFilename is <stage>_<id>.json with the codec suffix when compressed.
func ExportFilename(cfgCompress bool, codec string, stageName, id string) string {
	name := fmt.Sprintf("%s_%s.json", util.SanitizeFilename(stageName), id)
	if !cfgCompress {
		return name
	}
	if codec == CodecZstd {
		return name + ".zst"
	}
	return name + ".gz"
}

// exportJSON writes the replay to a file in the output directory.
func (b *Backend) exportJSON(item *storage.Item) (string, error) {
	export := BuildExport(item)
	filename := ExportFilename(b.cfg.CompressOutput, b.cfg.Codec, item.Replay.Stage.Name, export.ID)
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	werr := writeExport(f, export, b.cfg.CompressOutput, b.cfg.Codec)
	cerr := f.Close()
	if werr != nil {
		return "", werr
	}
	if cerr != nil {
		return "", fmt.Errorf("failed to close file: %w", cerr)
	}
	return outputPath, nil
}

func writeExport(w io.Writer, data ReplayExport, compress bool, codec string) error {
	if !compress {
		return json.NewEncoder(w).Encode(data)
	}

	var zw io.WriteCloser
	switch codec {
	case CodecZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		zw = enc
	default:
		zw = gzip.NewWriter(w)
	}

	if err := json.NewEncoder(zw).Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return zw.Close()
}
