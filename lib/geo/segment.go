package geo

import "math"

// DistanceToSegment returns the shortest distance from p to the
// segment a-b. A degenerate (zero-length) segment falls back to plain
// point distance rather than dividing by zero.
func DistanceToSegment(p, a, b Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	lenSq := vx*vx + vy*vy
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*vx + (p.Y-a.Y)*vy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point{a.X + t*vx, a.Y + t*vy}
	return p.Dist(proj)
}

// NearestPointOnSegment returns the closest point to p lying on a-b.
func NearestPointOnSegment(p, a, b Point) Point {
	vx, vy := b.X-a.X, b.Y-a.Y
	lenSq := vx*vx + vy*vy
	if lenSq == 0 {
		return a
	}
	t := ((p.X-a.X)*vx + (p.Y-a.Y)*vy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Point{a.X + t*vx, a.Y + t*vy}
}

// DistanceToBox returns the shortest distance from p to the clamped
// nearest point on box (box interior counts as distance 0).
func DistanceToBox(p Point, b Box) float64 {
	cx := math.Max(b.X, math.Min(p.X, b.X+b.W))
	cy := math.Max(b.Y, math.Min(p.Y, b.Y+b.H))
	return p.Dist(Point{cx, cy})
}

func ccw(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// onSegment reports whether p, known to be collinear with a-b, lies
// within the a-b segment's bounding range.
func onSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// SegmentsIntersect reports whether segments p1-p2 and p3-p4 intersect,
// using the standard counter-clockwise orientation predicate
// (including the touching/collinear boundary cases).
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := sign(ccw(p3, p4, p1))
	d2 := sign(ccw(p3, p4, p2))
	d3 := sign(ccw(p1, p2, p3))
	d4 := sign(ccw(p1, p2, p4))

	if d1 != d2 && d3 != d4 {
		return true
	}
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

// SegmentIntersectsBox reports whether segment a-b intersects box,
// expanded symmetrically by margin on every side. It returns true if
// either endpoint lies inside the expanded box, or if any of the
// box's four edges intersects the segment.
func SegmentIntersectsBox(a, b Point, box Box, margin float64) bool {
	exp := box.Expand(margin)
	if exp.ContainsPoint(a) || exp.ContainsPoint(b) {
		return true
	}
	tl, tr, br, bl := exp.TopLeft(), exp.TopRight(), exp.BottomRight(), exp.BottomLeft()
	edges := [4][2]Point{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
	for _, e := range edges {
		if SegmentsIntersect(a, b, e[0], e[1]) {
			return true
		}
	}
	return false
}

// PathIntersectsBox reports whether any segment of a polyline
// intersects box with the given margin.
func PathIntersectsBox(pts []Point, box Box, margin float64) bool {
	for i := 0; i+1 < len(pts); i++ {
		if SegmentIntersectsBox(pts[i], pts[i+1], box, margin) {
			return true
		}
	}
	return false
}

// ZoomEpsilon returns the "same coordinate" tolerance 0.5/zoom used for
// elbow cleanup and view-relative snap comparisons. zoom <= 0 is
// treated as 1 (world-space tolerance of 0.5).
func ZoomEpsilon(zoom float64) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	return 0.5 / zoom
}
