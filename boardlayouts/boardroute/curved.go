package boardroute

import (
	"math"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// gentleCurveFraction and gentleCurveCap bound the perpendicular offset
// of a gentle curve's control point (spec §4.4.2: min(0.1*length, 30)).
const (
	gentleCurveFraction = 0.1
	gentleCurveCap      = 30.0
	curveBoundsInset    = 5.0
)

// CurvedRouteAroundObstacles implements spec §4.4.2. When start and end
// have line of sight over the generic obstacle set and the resulting
// gentle curve doesn't re-enter either connected shape's inset bounds,
// it returns that 3-point quadratic control sequence. Otherwise it
// returns a 4-point corner-routed form through an outer corner of the
// connected endpoint's bound. An unconnected connector with no line of
// sight has no "endpoint's bound" to route a corner through, so it
// falls back to the elbow router's obstacle-clearing vertices.
func CurvedRouteAroundObstacles(
	start, end geo.Point,
	elements []*boardgraph.Element,
	excludeConnectorID string,
	startElementID, targetElementID string,
	tm boardgraph.TextMetrics,
) []geo.Point {
	exclude := map[string]bool{excludeConnectorID: true}
	if startElementID != "" {
		exclude[startElementID] = true
	}
	if targetElementID != "" {
		exclude[targetElementID] = true
	}
	obstacles := obstacleBoxes(elements, exclude, Margin, tm)

	if !segmentHitsAny(start, end, obstacles) {
		curve := gentleCurvePoints(start, end, elements, startElementID, targetElementID, tm)
		if curveClearOfConnectedBounds(curve, elements, startElementID, targetElementID, tm) {
			return curve
		}
	}

	if startElementID == "" && targetElementID == "" {
		return ElbowRouteAroundObstacles(start, end, elements, excludeConnectorID, startElementID, targetElementID, tm)
	}
	return cornerRoutedCurve(start, end, elements, startElementID, targetElementID, tm)
}

func gentleCurvePoints(start, end geo.Point, elements []*boardgraph.Element, startElementID, targetElementID string, tm boardgraph.TextMetrics) []geo.Point {
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return []geo.Point{start, end}
	}
	nx, ny := -dy/length, dx/length
	offset := math.Min(gentleCurveFraction*length, gentleCurveCap)
	mid := geo.Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}

	sign := 1.0
	relevantID := startElementID
	if relevantID == "" {
		relevantID = targetElementID
	}
	if relevantID != "" {
		if shape := lookup(elements, relevantID); shape != nil {
			center := boardgraph.WorldBounds(shape, tm).Center()
			toMid := geo.Point{X: mid.X - center.X, Y: mid.Y - center.Y}
			if toMid.X*nx+toMid.Y*ny < 0 {
				sign = -1
			}
		}
	}
	control := geo.Point{X: mid.X + nx*offset*sign, Y: mid.Y + ny*offset*sign}
	return []geo.Point{start, control, end}
}

// curveClearOfConnectedBounds samples the quadratic curve at t in
// 0.1..0.9 and rejects it if any sample re-enters a connected shape's
// bounds expanded by curveBoundsInset.
func curveClearOfConnectedBounds(curve []geo.Point, elements []*boardgraph.Element, startElementID, targetElementID string, tm boardgraph.TextMetrics) bool {
	if len(curve) != 3 {
		return true
	}
	var bounds []geo.Box
	if startElementID != "" {
		if s := lookup(elements, startElementID); s != nil {
			bounds = append(bounds, boardgraph.WorldBounds(s, tm).Expand(curveBoundsInset))
		}
	}
	if targetElementID != "" && targetElementID != startElementID {
		if s := lookup(elements, targetElementID); s != nil {
			bounds = append(bounds, boardgraph.WorldBounds(s, tm).Expand(curveBoundsInset))
		}
	}
	if len(bounds) == 0 {
		return true
	}
	p0, p1, p2 := curve[0], curve[1], curve[2]
	for i := 1; i <= 9; i++ {
		t := float64(i) / 10
		mt := 1 - t
		p := geo.Point{
			X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
			Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
		}
		for _, b := range bounds {
			if b.ContainsPoint(p) {
				return false
			}
		}
	}
	return true
}

func cornerRoutedCurve(start, end geo.Point, elements []*boardgraph.Element, startElementID, targetElementID string, tm boardgraph.TextMetrics) []geo.Point {
	if startElementID != "" {
		if shape := lookup(elements, startElementID); shape != nil {
			bounds := boardgraph.WorldBounds(shape, tm)
			inflated := bounds.Expand(Margin)
			side := sideOf(start, bounds)
			routing := cornerForSideAndHalf(inflated, side, end, bounds.Center())
			approach := exitPoint(start, side, Margin)
			return []geo.Point{start, approach, routing, end}
		}
	}
	if targetElementID != "" {
		if shape := lookup(elements, targetElementID); shape != nil {
			bounds := boardgraph.WorldBounds(shape, tm)
			inflated := bounds.Expand(Margin)
			side := sideOf(end, bounds)
			routing := cornerForSideAndHalf(inflated, side, start, bounds.Center())
			approach := exitPoint(end, side, Margin)
			return []geo.Point{start, routing, approach, end}
		}
	}
	return []geo.Point{start, end}
}

// cornerForSideAndHalf picks one of the inflated bound's two corners on
// side, based on which half of the shape other lies in.
func cornerForSideAndHalf(inflated geo.Box, side Side, other, center geo.Point) geo.Point {
	switch side {
	case SideTop, SideBottom:
		y := inflated.Y
		if side == SideBottom {
			y = inflated.Y + inflated.H
		}
		if other.X < center.X {
			return geo.Point{X: inflated.X, Y: y}
		}
		return geo.Point{X: inflated.X + inflated.W, Y: y}
	default:
		x := inflated.X
		if side == SideRight {
			x = inflated.X + inflated.W
		}
		if other.Y < center.Y {
			return geo.Point{X: x, Y: inflated.Y}
		}
		return geo.Point{X: x, Y: inflated.Y + inflated.H}
	}
}
