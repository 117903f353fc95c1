package geo

import (
	"sort"

	"github.com/gzreplay/gzr/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Track is the ordered list of positions one sender reported.
type Track struct {
	Sender uint64
	Points []core.Vec3
	Times  []float32
}

// LineString converts the track to an XYZ line string. Tracks with fewer
// than two points produce an empty geometry.
func (t Track) LineString() geom.LineString {
	if len(t.Points) < 2 {
		return geom.LineString{}.ForceCoordinatesType(geom.DimXYZ)
	}
	flat := make([]float64, 0, len(t.Points)*3)
	for _, p := range t.Points {
		flat = append(flat, p.X, p.Y, p.Z)
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXYZ))
}

// Length is the planar length of the track.
func (t Track) Length() float64 {
	return t.LineString().Length()
}

// TracksFromEvents groups BasicInfo positions by sender, in log order.
// Result is sorted by sender.
func TracksFromEvents(events []core.EventRecord) []Track {
	bySender := make(map[uint64]*Track)
	for _, rec := range events {
		bi, ok := rec.Event.(core.BasicInfo)
		if !ok {
			continue
		}
		tr, ok := bySender[rec.Sender]
		if !ok {
			tr = &Track{Sender: rec.Sender}
			bySender[rec.Sender] = tr
		}
		tr.Points = append(tr.Points, bi.Position)
		tr.Times = append(tr.Times, rec.Time)
	}

	tracks := make([]Track, 0, len(bySender))
	for _, tr := range bySender {
		tracks = append(tracks, *tr)
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Sender < tracks[j].Sender })
	return tracks
}
