// Package boarderase implements eraser hit-testing (spec §4.7):
// distance-to-segment and distance-to-box checks for every visible
// element kind, driven by the interaction state machine's ERASING
// gesture. Grounded on `lib/geo/segment.go`'s DistanceToSegment/
// DistanceToBox (the teacher's own style of small pure distance
// helpers, already kept and extended for this core) plus
// `boardlayouts/boardroute`'s rendering-polyline sampler for
// elbow/curved connectors.
package boarderase

import (
	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardroute"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// Radius returns the hit-test radius for a stroke of the given width
// (spec §4.7: erase_radius = stroke_width * 2).
func Radius(strokeWidth float64) float64 {
	return strokeWidth * 2
}

// Hits reports whether q, with the given query radius, touches e.
// Remotely selected elements are never erasable; callers should filter
// them out before calling Hits (kept out of this package so it stays a
// pure geometry predicate).
func Hits(q geo.Point, e *boardgraph.Element, tm boardgraph.TextMetrics) bool {
	radius := Radius(e.StrokeWidth)
	switch {
	case e.Kind.IsConnector():
		return boardroute.DistanceToConnector(q, e) < radius
	case e.Kind == boardgraph.KindPen || e.Kind == boardgraph.KindLaser:
		return hitsPath(q, e.Points, radius+e.StrokeWidth)
	default:
		return geo.DistanceToBox(q, boardgraph.WorldBounds(e, tm)) < radius
	}
}

func hitsPath(q geo.Point, pts []geo.Point, radius float64) bool {
	if len(pts) == 0 {
		return false
	}
	if len(pts) == 1 {
		return q.Dist(pts[0]) < radius
	}
	for i := 0; i+1 < len(pts); i++ {
		if geo.DistanceToSegment(q, pts[i], pts[i+1]) < radius {
			return true
		}
	}
	return false
}

// MarkedForErase scans elements along the eraser's traveled segment
// (from prev to cur, both world space) and returns the set of element
// ids it newly touches. Callers accumulate this into a running
// ids_marked_for_erase set across the whole ERASING gesture and apply
// it via the Store's delete port at pointer-up.
func MarkedForErase(prev, cur geo.Point, elements []*boardgraph.Element, tm boardgraph.TextMetrics, already map[string]bool) []string {
	var newly []string
	steps := travelSamples(prev, cur)
	for _, e := range elements {
		if e.Hidden || e.Locked || e.RemotelySelected || already[e.ID] {
			continue
		}
		for _, p := range steps {
			if Hits(p, e, tm) {
				newly = append(newly, e.ID)
				break
			}
		}
	}
	return newly
}

// travelSamples interpolates along prev-cur so a fast eraser stroke
// between two pointer-move ticks still tests intermediate points
// rather than only its endpoints.
func travelSamples(prev, cur geo.Point) []geo.Point {
	dist := prev.Dist(cur)
	if dist < 1 {
		return []geo.Point{cur}
	}
	steps := int(dist) + 1
	if steps > 64 {
		steps = 64
	}
	out := make([]geo.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		out = append(out, geo.Point{
			X: prev.X + (cur.X-prev.X)*t,
			Y: prev.Y + (cur.Y-prev.Y)*t,
		})
	}
	return out
}
