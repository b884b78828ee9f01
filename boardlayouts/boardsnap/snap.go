// Package boardsnap implements the snap engine (spec §4.3): shape-
// relative snap-point generation, edge sliding, and nearest-target
// search with a line-of-sight accessibility flag. Grounded on the
// teacher's edge-routing style of small pure helpers operating on a
// shared Point type (d2dagrelayout/godagre/edge_routing.go) and on the
// fork's port/face assignment pattern
// (d2layouts/d2wueortho/gridroute.go), adapted here from rank-based
// ports to shape-relative snap points.
package boardsnap

import (
	"math"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// interiorInset is the amount a target's bounds are shrunk by when
// testing line-of-sight accessibility (spec §4.3).
const interiorInset = 5.0

// SnapPoint is one typed, shape-relative candidate: either one of the
// eight corner/edge-midpoint positions, or an edge-slide point (no
// fixed Position).
type SnapPoint struct {
	Point    geo.Point
	Position boardgraph.Position // "" for an edge-slide point
	IsEdge   bool
}

// GetElementSnapPoints returns the fixed set of shape-relative snap
// points for e, rotated into world space. Connectors, pen strokes, and
// lasers have none.
func GetElementSnapPoints(e *boardgraph.Element, tm boardgraph.TextMetrics) []SnapPoint {
	if e.Kind.IsConnector() || e.Kind == boardgraph.KindPen || e.Kind == boardgraph.KindLaser {
		return nil
	}

	b := boardgraph.BoundingBox(e, tm)

	var pts []SnapPoint
	switch e.Kind {
	case boardgraph.KindEllipse:
		pts = ellipseSnapPoints(b)
	case boardgraph.KindDiamond:
		pts = diamondSnapPoints(b)
	default: // rectangle, frame, web-embed, tile, text
		pts = rectSnapPoints(b)
	}

	if e.Rotation != 0 {
		center := b.Center()
		for i := range pts {
			pts[i].Point = geo.RotatePoint(pts[i].Point, center, e.Rotation)
		}
	}
	return pts
}

// PointForPosition returns the world point of e's fixed snap point at
// position, used by connection maintenance (spec §4.5) to recompute an
// anchored endpoint from its stored position tag.
func PointForPosition(e *boardgraph.Element, position boardgraph.Position, tm boardgraph.TextMetrics) (geo.Point, bool) {
	for _, sp := range GetElementSnapPoints(e, tm) {
		if sp.Position == position {
			return sp.Point, true
		}
	}
	return geo.Point{}, false
}

func rectSnapPoints(b geo.Box) []SnapPoint {
	return []SnapPoint{
		{Point: b.TopLeft(), Position: boardgraph.PosNW},
		{Point: geo.Point{X: b.X + b.W/2, Y: b.Y}, Position: boardgraph.PosN},
		{Point: b.TopRight(), Position: boardgraph.PosNE},
		{Point: geo.Point{X: b.X + b.W, Y: b.Y + b.H/2}, Position: boardgraph.PosE},
		{Point: b.BottomRight(), Position: boardgraph.PosSE},
		{Point: geo.Point{X: b.X + b.W/2, Y: b.Y + b.H}, Position: boardgraph.PosS},
		{Point: b.BottomLeft(), Position: boardgraph.PosSW},
		{Point: geo.Point{X: b.X, Y: b.Y + b.H/2}, Position: boardgraph.PosW},
	}
}

// ellipseSnapPoints returns the four cardinal outline points plus the
// four 45-degree outline points, computed trigonometrically on the
// ellipse inscribed in b.
func ellipseSnapPoints(b geo.Box) []SnapPoint {
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	rx, ry := b.W/2, b.H/2
	at := func(deg float64) geo.Point {
		rad := geo.DegreesToRadians(deg)
		return geo.Point{X: cx + rx*math.Cos(rad), Y: cy + ry*math.Sin(rad)}
	}
	return []SnapPoint{
		{Point: at(270), Position: boardgraph.PosN},
		{Point: at(0), Position: boardgraph.PosE},
		{Point: at(90), Position: boardgraph.PosS},
		{Point: at(180), Position: boardgraph.PosW},
		{Point: at(315), Position: boardgraph.PosNE},
		{Point: at(45), Position: boardgraph.PosSE},
		{Point: at(135), Position: boardgraph.PosSW},
		{Point: at(225), Position: boardgraph.PosNW},
	}
}

// diamondVertices returns the diamond's four vertices in N, E, S, W
// order (top, right, bottom, left of the bounding box).
func diamondVertices(b geo.Box) [4]geo.Point {
	return [4]geo.Point{
		{X: b.X + b.W/2, Y: b.Y},         // N
		{X: b.X + b.W, Y: b.Y + b.H/2},   // E
		{X: b.X + b.W/2, Y: b.Y + b.H},   // S
		{X: b.X, Y: b.Y + b.H/2},         // W
	}
}

// diamondSnapPoints returns the four vertices plus the edge midpoints
// halfway along each of the diamond's four sides.
func diamondSnapPoints(b geo.Box) []SnapPoint {
	v := diamondVertices(b)
	mid := func(a, c geo.Point) geo.Point {
		return geo.Point{X: (a.X + c.X) / 2, Y: (a.Y + c.Y) / 2}
	}
	return []SnapPoint{
		{Point: v[0], Position: boardgraph.PosN},
		{Point: v[1], Position: boardgraph.PosE},
		{Point: v[2], Position: boardgraph.PosS},
		{Point: v[3], Position: boardgraph.PosW},
		{Point: mid(v[0], v[1]), Position: boardgraph.PosNE},
		{Point: mid(v[1], v[2]), Position: boardgraph.PosSE},
		{Point: mid(v[2], v[3]), Position: boardgraph.PosSW},
		{Point: mid(v[3], v[0]), Position: boardgraph.PosNW},
	}
}

// GetEdgeSnapPoint returns the nearest point on e's outline to p
// (world space), used for free sliding along an edge. Rotation is
// undone before the local computation and reapplied on the way out.
func GetEdgeSnapPoint(e *boardgraph.Element, p geo.Point, tm boardgraph.TextMetrics) geo.Point {
	b := boardgraph.BoundingBox(e, tm)
	center := b.Center()
	local := p
	if e.Rotation != 0 {
		local = geo.RotatePoint(p, center, -e.Rotation)
	}

	var result geo.Point
	switch e.Kind {
	case boardgraph.KindEllipse:
		result = nearestEllipsePoint(b, local)
	case boardgraph.KindDiamond:
		result = nearestDiamondPoint(b, local)
	default:
		result = clampToRect(b, local)
	}

	if e.Rotation != 0 {
		result = geo.RotatePoint(result, center, e.Rotation)
	}
	return result
}

func clampToRect(b geo.Box, p geo.Point) geo.Point {
	candidates := []geo.Point{
		geo.NearestPointOnSegment(p, b.TopLeft(), b.TopRight()),
		geo.NearestPointOnSegment(p, b.TopRight(), b.BottomRight()),
		geo.NearestPointOnSegment(p, b.BottomRight(), b.BottomLeft()),
		geo.NearestPointOnSegment(p, b.BottomLeft(), b.TopLeft()),
	}
	return nearestOf(p, candidates)
}

func nearestDiamondPoint(b geo.Box, p geo.Point) geo.Point {
	v := diamondVertices(b)
	candidates := []geo.Point{
		geo.NearestPointOnSegment(p, v[0], v[1]),
		geo.NearestPointOnSegment(p, v[1], v[2]),
		geo.NearestPointOnSegment(p, v[2], v[3]),
		geo.NearestPointOnSegment(p, v[3], v[0]),
	}
	return nearestOf(p, candidates)
}

func nearestOf(p geo.Point, candidates []geo.Point) geo.Point {
	best := candidates[0]
	bestDist := p.Dist(best)
	for _, c := range candidates[1:] {
		if d := p.Dist(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// nearestEllipsePoint computes the parametric closest point on the
// ellipse's outline to p via the angle from center (an approximation
// exact for circles and close enough for whiteboard-scale ellipses,
// matching how the teacher's trig-based helpers favor closed-form
// angle math over iterative root finding).
func nearestEllipsePoint(b geo.Box, p geo.Point) geo.Point {
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	rx, ry := b.W/2, b.H/2
	if rx == 0 || ry == 0 {
		return geo.Point{X: cx, Y: cy}
	}
	angle := math.Atan2((p.Y-cy)/ry, (p.X-cx)/rx)
	return geo.Point{X: cx + rx*math.Cos(angle), Y: cy + ry*math.Sin(angle)}
}

// IsSnapPointAccessible reports whether a straight segment from other
// to snap does NOT enter target's shrunk interior (inset by
// interiorInset world units). True means line-of-sight is clear.
func IsSnapPointAccessible(other, snap geo.Point, target geo.Box) bool {
	shrunk := target.Expand(-interiorInset)
	return !geo.SegmentIntersectsBox(other, snap, shrunk, 0)
}

// Result is the outcome of a nearest-snap-target search.
type Result struct {
	Point              geo.Point
	Position           boardgraph.Position // "" when IsEdge
	IsEdge             bool
	TargetID           string
	OutOfLineOfSight   bool
}

// FindNearestSnapTarget iterates all non-connector elements except
// excludeID, keeps the closest corner/mid snap point under
// snapDistance, then (only if none qualified) considers edge-sliding
// snaps at 1.2x snapDistance. When connectorStyle is sharp and
// otherEndpoint is supplied, the accessibility predicate is evaluated
// against the chosen target and OutOfLineOfSight is set accordingly;
// the snap itself is never rejected for inaccessibility (spec §4.3).
func FindNearestSnapTarget(
	cursor geo.Point,
	elements []*boardgraph.Element,
	excludeID string,
	snapDistance float64,
	connectorStyle boardgraph.ConnectorStyle,
	otherEndpoint *geo.Point,
	tm boardgraph.TextMetrics,
) (*Result, bool) {
	var best *Result
	bestDist := math.Inf(1)

	for _, e := range elements {
		if e.ID == excludeID || e.Kind.IsConnector() || e.Kind == boardgraph.KindPen || e.Kind == boardgraph.KindLaser {
			continue
		}
		for _, sp := range GetElementSnapPoints(e, tm) {
			d := cursor.Dist(sp.Point)
			if d < snapDistance && d < bestDist {
				bestDist = d
				best = &Result{Point: sp.Point, Position: sp.Position, TargetID: e.ID}
			}
		}
	}

	if best == nil {
		edgeDist := snapDistance * 1.2
		for _, e := range elements {
			if e.ID == excludeID || e.Kind.IsConnector() || e.Kind == boardgraph.KindPen || e.Kind == boardgraph.KindLaser {
				continue
			}
			p := GetEdgeSnapPoint(e, cursor, tm)
			d := cursor.Dist(p)
			if d < edgeDist && d < bestDist {
				bestDist = d
				best = &Result{Point: p, IsEdge: true, TargetID: e.ID}
			}
		}
	}

	if best == nil {
		return nil, false
	}

	if connectorStyle == boardgraph.StyleSharp && otherEndpoint != nil {
		target := findElement(elements, best.TargetID)
		if target != nil {
			b := boardgraph.WorldBounds(target, tm)
			best.OutOfLineOfSight = !IsSnapPointAccessible(*otherEndpoint, best.Point, b)
		}
	}

	return best, true
}

func findElement(elements []*boardgraph.Element, id string) *boardgraph.Element {
	for _, e := range elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}
