package boardroute

import (
	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// quadraticSteps and catmullStepsPerSegment are the sampling densities
// spec §4.4.3 specifies for hit-testing a curved connector: a 3-point
// curve (one control point) samples as a single quadratic Bezier: a
// longer curve samples as a Catmull-Rom spline through all of its
// points, a fixed number of steps per interior segment.
const (
	quadraticSteps        = 32
	catmullStepsPerSegment = 12
)

// SampleConnectorPolyline expands e.Points into the dense polyline used
// for hit-testing (eraser distance checks) and pointer-grab detection.
// Sharp and elbow connectors are already straight-segment polylines and
// pass through unchanged; curved connectors are sampled from their
// Bezier/Catmull-Rom control points.
func SampleConnectorPolyline(e *boardgraph.Element) []geo.Point {
	if e.ConnectorStyle != boardgraph.StyleCurved || len(e.Points) < 3 {
		return e.Points
	}
	if len(e.Points) == 3 {
		return sampleQuadratic(e.Points[0], e.Points[1], e.Points[2], quadraticSteps)
	}
	return sampleCatmullRom(e.Points, catmullStepsPerSegment)
}

func sampleQuadratic(p0, p1, p2 geo.Point, steps int) []geo.Point {
	out := make([]geo.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		x := mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X
		y := mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y
		out = append(out, geo.Point{X: x, Y: y})
	}
	return out
}

// sampleCatmullRom samples a centripetal-free (uniform) Catmull-Rom
// spline through pts, duplicating the first and last points as virtual
// control points so the curve passes through every input point.
func sampleCatmullRom(pts []geo.Point, stepsPerSegment int) []geo.Point {
	if len(pts) < 2 {
		return pts
	}
	ext := make([]geo.Point, 0, len(pts)+2)
	ext = append(ext, pts[0])
	ext = append(ext, pts...)
	ext = append(ext, pts[len(pts)-1])

	out := make([]geo.Point, 0, (len(pts)-1)*stepsPerSegment+1)
	for i := 1; i+2 < len(ext); i++ {
		p0, p1, p2, p3 := ext[i-1], ext[i], ext[i+1], ext[i+2]
		for s := 0; s < stepsPerSegment; s++ {
			t := float64(s) / float64(stepsPerSegment)
			out = append(out, catmullRomPoint(p0, p1, p2, p3, t))
		}
	}
	out = append(out, pts[len(pts)-1])
	return out
}

func catmullRomPoint(p0, p1, p2, p3 geo.Point, t float64) geo.Point {
	t2 := t * t
	t3 := t2 * t
	x := 0.5 * ((2 * p1.X) +
		(-p0.X+p2.X)*t +
		(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
		(-p0.X+3*p1.X-3*p2.X+p3.X)*t3)
	y := 0.5 * ((2 * p1.Y) +
		(-p0.Y+p2.Y)*t +
		(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
		(-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3)
	return geo.Point{X: x, Y: y}
}

// DistanceToConnector returns the shortest distance from q to e's
// rendered path, sampling curved connectors first (spec §4.4.3 /
// §4.7).
func DistanceToConnector(q geo.Point, e *boardgraph.Element) float64 {
	pts := SampleConnectorPolyline(e)
	if len(pts) == 0 {
		return -1
	}
	if len(pts) == 1 {
		return q.Dist(pts[0])
	}
	best := geo.DistanceToSegment(q, pts[0], pts[1])
	for i := 1; i+1 < len(pts); i++ {
		if d := geo.DistanceToSegment(q, pts[i], pts[i+1]); d < best {
			best = d
		}
	}
	return best
}
