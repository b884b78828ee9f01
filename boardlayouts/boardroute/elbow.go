// Package boardroute implements the route planners (spec §4.4): the
// elbow router that threads an orthogonal polyline around obstacles,
// the curved router that returns Bezier/Catmull-Rom control points,
// and the shared connector hit-testing polyline sampler.
//
// Grounded on d2dagrelayout/godagre/edge_routing.go's small-pure-
// helpers-over-a-shared-Point style (route a single edge, then offset/
// distribute variants of it) and on the d2wueortho fork's face/port
// assignment (oss.terrastruct.com/d2/lib/geo, gridroute.go,
// nudging.go) adapted from a whole-graph layout pass to a
// single-connector obstacle router.
package boardroute

import (
	"math"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// Margin is the constant inflation applied to obstacle boxes for the
// elbow router (spec §4.4.1).
const Margin = 80.0

// SelfMargin is the outward push used when routing a self-connection.
const SelfMargin = 40.0

// PreferredGapMargin and MinGapMargin bound the dynamic inter-shape
// margin computed for dual-connection routing.
const (
	PreferredGapMargin = 40.0
	MinGapMargin        = 20.0
)

// Side is one of the four sides of a box-like shape.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// sideOf determines which side of box p lies nearest to, falling back
// to the direction from the box's center when p isn't clearly on a
// boundary (spec: "determined by proximity to the shape edge, falling
// back to center direction").
func sideOf(p geo.Point, b geo.Box) Side {
	const eps = 1e-6
	switch {
	case math.Abs(p.Y-b.Y) < eps:
		return SideTop
	case math.Abs(p.Y-(b.Y+b.H)) < eps:
		return SideBottom
	case math.Abs(p.X-b.X) < eps:
		return SideLeft
	case math.Abs(p.X-(b.X+b.W)) < eps:
		return SideRight
	}
	c := b.Center()
	dx, dy := p.X-c.X, p.Y-c.Y
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return SideRight
		}
		return SideLeft
	}
	if dy > 0 {
		return SideBottom
	}
	return SideTop
}

func (s Side) isVertical() bool { return s == SideLeft || s == SideRight }

// exitPoint pushes p outward from its shape by margin along side's
// outward normal, leaving the other coordinate untouched.
func exitPoint(p geo.Point, s Side, margin float64) geo.Point {
	switch s {
	case SideTop:
		return geo.Point{X: p.X, Y: p.Y - margin}
	case SideBottom:
		return geo.Point{X: p.X, Y: p.Y + margin}
	case SideLeft:
		return geo.Point{X: p.X - margin, Y: p.Y}
	case SideRight:
		return geo.Point{X: p.X + margin, Y: p.Y}
	}
	return p
}

// obstacleBoxes returns inflated boxes for every box-like element not
// in excludeIDs (spec: "all non-path, non-excluded, non-connected
// elements").
func obstacleBoxes(elements []*boardgraph.Element, excludeIDs map[string]bool, margin float64, tm boardgraph.TextMetrics) []geo.Box {
	var boxes []geo.Box
	for _, e := range elements {
		if e.Kind.IsPathLike() || excludeIDs[e.ID] {
			continue
		}
		boxes = append(boxes, boardgraph.WorldBounds(e, tm).Expand(margin))
	}
	return boxes
}

func pathHitsAny(path []geo.Point, obstacles []geo.Box) bool {
	for _, ob := range obstacles {
		if geo.PathIntersectsBox(path, ob, 0) {
			return true
		}
	}
	return false
}

func segmentHitsAny(a, b geo.Point, obstacles []geo.Box) bool {
	for _, ob := range obstacles {
		if geo.SegmentIntersectsBox(a, b, ob, 0) {
			return true
		}
	}
	return false
}

func manhattanLength(path []geo.Point) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += math.Abs(path[i+1].X-path[i].X) + math.Abs(path[i+1].Y-path[i].Y)
	}
	return total
}

// simplifyOrthogonal removes consecutive duplicates and collinear
// interior points from an orthogonal polyline.
func simplifyOrthogonal(path []geo.Point) []geo.Point {
	if len(path) < 3 {
		return dedupe(path)
	}
	out := []geo.Point{path[0]}
	for i := 1; i < len(path)-1; i++ {
		prev, cur, next := out[len(out)-1], path[i], path[i+1]
		sameX := prev.X == cur.X && cur.X == next.X
		sameY := prev.Y == cur.Y && cur.Y == next.Y
		if sameX || sameY {
			continue // cur is collinear with its neighbors; drop it
		}
		out = append(out, cur)
	}
	out = append(out, path[len(path)-1])
	return dedupe(out)
}

func dedupe(path []geo.Point) []geo.Point {
	if len(path) == 0 {
		return path
	}
	out := []geo.Point{path[0]}
	for _, p := range path[1:] {
		if p.Equal(out[len(out)-1], 1e-9) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LineOfSightClear reports whether segment a-b clears every non-path
// element not in excludeIDs, inflated by the elbow margin. Used by
// connection maintenance (spec §4.5) to decide whether a moved sharp
// connector can stay straight or must escalate to elbow.
func LineOfSightClear(a, b geo.Point, elements []*boardgraph.Element, excludeIDs map[string]bool, tm boardgraph.TextMetrics) bool {
	obstacles := obstacleBoxes(elements, excludeIDs, Margin, tm)
	return !segmentHitsAny(a, b, obstacles)
}

func lookup(elements []*boardgraph.Element, id string) *boardgraph.Element {
	for _, e := range elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// ElbowRouteAroundObstacles implements spec §4.4.1. startElementID and
// targetElementID are "" when that endpoint isn't connected to a
// shape.
func ElbowRouteAroundObstacles(
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

	if startElementID == "" && targetElementID == "" {
		if !segmentHitsAny(start, end, obstacles) {
			return []geo.Point{start, end}
		}
		return routeNoConnection(start, end, obstacles)
	}

	if startElementID != "" && startElementID == targetElementID {
		shape := lookup(elements, startElementID)
		if shape == nil {
			return routeNoConnection(start, end, obstacles)
		}
		return routeSelfConnection(start, end, boardgraph.WorldBounds(shape, tm))
	}

	if startElementID != "" && targetElementID != "" {
		sShape := lookup(elements, startElementID)
		tShape := lookup(elements, targetElementID)
		if sShape == nil || tShape == nil {
			return routeNoConnection(start, end, obstacles)
		}
		return routeDualConnection(start, end,
			boardgraph.WorldBounds(sShape, tm), boardgraph.WorldBounds(tShape, tm), obstacles)
	}

	if startElementID != "" {
		shape := lookup(elements, startElementID)
		if shape == nil {
			return routeNoConnection(start, end, obstacles)
		}
		return routeSingleStart(start, end, boardgraph.WorldBounds(shape, tm))
	}

	shape := lookup(elements, targetElementID)
	if shape == nil {
		return routeNoConnection(start, end, obstacles)
	}
	return routeSingleEnd(start, end, boardgraph.WorldBounds(shape, tm))
}

// --- self-connection ---

func routeSelfConnection(start, end geo.Point, shape geo.Box) []geo.Point {
	outer := shape.Expand(SelfMargin)
	sideA := sideOf(start, shape)
	sideB := sideOf(end, shape)
	exitA := exitPoint(start, sideA, SelfMargin)
	exitB := exitPoint(end, sideB, SelfMargin)

	var path []geo.Point
	switch {
	case sideA == sideB:
		if sideA.isVertical() {
			path = []geo.Point{start, {exitA.X, start.Y}, {exitB.X, end.Y}, end}
		} else {
			path = []geo.Point{start, {start.X, exitA.Y}, {end.X, exitB.Y}, end}
		}
	case isOpposite(sideA, sideB):
		center := shape.Center()
		if sideA.isVertical() { // Left-Right: detour around the top or bottom
			outerY := outer.Y
			if (start.Y+end.Y)/2 >= center.Y {
				outerY = outer.Y + outer.H
			}
			cornerA := geo.Point{X: exitA.X, Y: outerY}
			cornerB := geo.Point{X: exitB.X, Y: outerY}
			path = []geo.Point{start, exitA, cornerA, cornerB, exitB, end}
		} else { // Top-Bottom: detour around the left or right side
			outerX := outer.X
			if (start.X+end.X)/2 >= center.X {
				outerX = outer.X + outer.W
			}
			cornerA := geo.Point{X: outerX, Y: exitA.Y}
			cornerB := geo.Point{X: outerX, Y: exitB.Y}
			path = []geo.Point{start, exitA, cornerA, cornerB, exitB, end}
		}
	default: // adjacent
		var corner geo.Point
		if sideA.isVertical() {
			corner = geo.Point{X: exitA.X, Y: exitB.Y}
		} else {
			corner = geo.Point{X: exitB.X, Y: exitA.Y}
		}
		path = []geo.Point{start, exitA, corner, exitB, end}
	}
	return simplifyOrthogonal(path)
}

func isOpposite(a, b Side) bool {
	return (a == SideTop && b == SideBottom) || (a == SideBottom && b == SideTop) ||
		(a == SideLeft && b == SideRight) || (a == SideRight && b == SideLeft)
}

// --- dual connection ---

func gapAlongAxis(aMin, aMax, bMin, bMax float64) float64 {
	if bMin > aMax {
		return bMin - aMax
	}
	if aMin > bMax {
		return aMin - bMax
	}
	return 0 // overlapping
}

func perAxisMargin(gap float64) float64 {
	if gap <= 0 {
		return PreferredGapMargin
	}
	m := math.Min(PreferredGapMargin, gap/2)
	if m < MinGapMargin {
		return MinGapMargin
	}
	return m
}

func unionBox(a, b geo.Box) geo.Box {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxX := math.Max(a.X+a.W, b.X+b.W)
	maxY := math.Max(a.Y+a.H, b.Y+b.H)
	return geo.Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func routeDualConnection(start, end geo.Point, startBounds, targetBounds geo.Box, obstacles []geo.Box) []geo.Point {
	gapX := gapAlongAxis(startBounds.X, startBounds.X+startBounds.W, targetBounds.X, targetBounds.X+targetBounds.W)
	gapY := gapAlongAxis(startBounds.Y, startBounds.Y+startBounds.H, targetBounds.Y, targetBounds.Y+targetBounds.H)
	marginX := perAxisMargin(gapX)
	marginY := perAxisMargin(gapY)

	sideA := sideOf(start, startBounds)
	sideB := sideOf(end, targetBounds)
	marginFor := func(s Side) float64 {
		if s.isVertical() {
			return marginX
		}
		return marginY
	}
	exitA := exitPoint(start, sideA, marginFor(sideA))
	exitB := exitPoint(end, sideB, marginFor(sideB))

	var candidates [][]geo.Point

	if exitA.Y == exitB.Y || exitA.X == exitB.X {
		candidates = append(candidates, []geo.Point{start, exitA, exitB, end})
	} else {
		candidates = append(candidates, []geo.Point{start, exitA, {exitB.X, exitA.Y}, exitB, end})
		candidates = append(candidates, []geo.Point{start, exitA, {exitA.X, exitB.Y}, exitB, end})
	}

	outer := unionBox(startBounds, targetBounds)
	m := math.Max(marginX, marginY)
	topY := outer.Y - m
	bottomY := outer.Y + outer.H + m
	leftX := outer.X - m
	rightX := outer.X + outer.W + m
	candidates = append(candidates,
		[]geo.Point{start, {start.X, topY}, {end.X, topY}, end},
		[]geo.Point{start, {start.X, bottomY}, {end.X, bottomY}, end},
		[]geo.Point{start, {leftX, start.Y}, {leftX, end.Y}, end},
		[]geo.Point{start, {rightX, start.Y}, {rightX, end.Y}, end},
	)

	var best []geo.Point
	bestLen := math.Inf(1)
	for _, c := range candidates {
		c = simplifyOrthogonal(c)
		if !isValidDualPath(c, startBounds, targetBounds) {
			continue
		}
		if pathHitsAny(c, obstacles) {
			continue
		}
		if l := manhattanLength(c); l < bestLen {
			best, bestLen = c, l
		}
	}
	if best != nil {
		return best
	}

	// Fallback: orthogonal L from the start exit.
	fallback := []geo.Point{start, exitA, {exitA.X, end.Y}, end}
	if exitA.Y == end.Y {
		fallback = []geo.Point{start, exitA, end}
	}
	return simplifyOrthogonal(fallback)
}

// isValidDualPath enforces spec §4.4.1's validity predicate: no
// interior vertex lies in either connected bound; the first segment
// may only enter startBounds; the last may only enter targetBounds;
// every other segment must clear both.
func isValidDualPath(path []geo.Point, startBounds, targetBounds geo.Box) bool {
	if len(path) < 2 {
		return false
	}
	if len(path) == 2 {
		// A direct exit-to-exit hop necessarily touches both bounds at
		// its endpoints; there's no interior segment to validate.
		return true
	}
	for i := 1; i < len(path)-1; i++ {
		if startBounds.ContainsPoint(path[i]) || targetBounds.ContainsPoint(path[i]) {
			return false
		}
	}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		entersStart := geo.SegmentIntersectsBox(a, b, startBounds, 0)
		entersTarget := geo.SegmentIntersectsBox(a, b, targetBounds, 0)
		switch {
		case i == 0:
			if entersTarget {
				return false
			}
		case i == len(path)-2:
			if entersStart {
				return false
			}
		default:
			if entersStart || entersTarget {
				return false
			}
		}
	}
	return true
}

// --- single connection ---

func routeSingleStart(start, end geo.Point, startBounds geo.Box) []geo.Point {
	side := sideOf(start, startBounds)
	exit := exitPoint(start, side, Margin)
	var corner geo.Point
	if side.isVertical() {
		corner = geo.Point{X: exit.X, Y: end.Y}
	} else {
		corner = geo.Point{X: end.X, Y: exit.Y}
	}
	return simplifyOrthogonal([]geo.Point{start, exit, corner, end})
}

func routeSingleEnd(start, end geo.Point, targetBounds geo.Box) []geo.Point {
	expanded := targetBounds.Expand(Margin)
	side := sideOf(end, targetBounds)
	exit := exitPoint(end, side, Margin)

	if side.isVertical() {
		if start.Y >= expanded.Y && start.Y <= expanded.Y+expanded.H {
			corner := geo.Point{X: exit.X, Y: start.Y}
			return simplifyOrthogonal([]geo.Point{start, corner, exit, end})
		}
		nearY := nearerOf(expanded.Y, expanded.Y+expanded.H, start.Y)
		corner := geo.Point{X: exit.X, Y: nearY}
		return simplifyOrthogonal([]geo.Point{start, {start.X, nearY}, corner, exit, end})
	}
	if start.X >= expanded.X && start.X <= expanded.X+expanded.W {
		corner := geo.Point{X: start.X, Y: exit.Y}
		return simplifyOrthogonal([]geo.Point{start, corner, exit, end})
	}
	nearX := nearerOf(expanded.X, expanded.X+expanded.W, start.X)
	corner := geo.Point{X: nearX, Y: exit.Y}
	return simplifyOrthogonal([]geo.Point{start, {nearX, start.Y}, corner, exit, end})
}

func nearerOf(a, b, target float64) float64 {
	if math.Abs(a-target) <= math.Abs(b-target) {
		return a
	}
	return b
}

// --- no connection, obstacle present ---

func routeNoConnection(start, end geo.Point, obstacles []geo.Box) []geo.Point {
	hFirst := []geo.Point{start, {end.X, start.Y}, end}
	vFirst := []geo.Point{start, {start.X, end.Y}, end}
	if !pathHitsAny(hFirst, obstacles) {
		return simplifyOrthogonal(hFirst)
	}
	if !pathHitsAny(vFirst, obstacles) {
		return simplifyOrthogonal(vFirst)
	}

	blocker, ok := closestBlockingObstacle(start, end, obstacles)
	if ok {
		if path, found := bestCornerPath(start, end, blocker, obstacles); found {
			return path
		}
	}

	if !ok {
		blocker = obstacles[0]
	}
	over := []geo.Point{start, {start.X, blocker.Y}, {end.X, blocker.Y}, end}
	if !pathHitsAny(over, obstacles) {
		return simplifyOrthogonal(over)
	}
	under := []geo.Point{start, {start.X, blocker.Y + blocker.H}, {end.X, blocker.Y + blocker.H}, end}
	if !pathHitsAny(under, obstacles) {
		return simplifyOrthogonal(under)
	}
	return simplifyOrthogonal(over)
}

func closestBlockingObstacle(start, end geo.Point, obstacles []geo.Box) (geo.Box, bool) {
	var best geo.Box
	bestDist := math.Inf(1)
	found := false
	for _, ob := range obstacles {
		if !geo.SegmentIntersectsBox(start, end, ob, 0) {
			continue
		}
		d := start.Dist(ob.Center())
		if d < bestDist {
			best, bestDist, found = ob, d, true
		}
	}
	return best, found
}

func bestCornerPath(start, end geo.Point, ob geo.Box, obstacles []geo.Box) ([]geo.Point, bool) {
	corners := []geo.Point{ob.TopLeft(), ob.TopRight(), ob.BottomRight(), ob.BottomLeft()}
	var best []geo.Point
	bestLen := math.Inf(1)
	for _, c := range corners {
		variantA := []geo.Point{start, {c.X, start.Y}, c, {end.X, c.Y}, end}
		variantB := []geo.Point{start, {start.X, c.Y}, c, {c.X, end.Y}, end}
		for _, v := range [][]geo.Point{variantA, variantB} {
			v = simplifyOrthogonal(v)
			if pathHitsAny(v, obstacles) {
				continue
			}
			if l := manhattanLength(v); l < bestLen {
				best, bestLen = v, l
			}
		}
	}
	return best, best != nil
}
