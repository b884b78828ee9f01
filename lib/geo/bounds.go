package geo

import "math"

// Box is an axis-aligned bounding box in world coordinates. Width and
// Height are non-negative in stored form; see SignedBox for the
// transient variant used mid-resize.
type Box struct {
	X, Y, W, H float64
}

func NewBox(x, y, w, h float64) *Box {
	return &Box{X: x, Y: y, W: w, H: h}
}

// SignedBox is a resize-in-progress bounds where W/H may be negative
// while a handle is dragged past the opposite edge. Normalize converts
// it back to a stored Box.
type SignedBox struct {
	X, Y, W, H float64
}

func (s SignedBox) Normalize() Box {
	b := Box{s.X, s.Y, s.W, s.H}
	if b.W < 0 {
		b.X += b.W
		b.W = -b.W
	}
	if b.H < 0 {
		b.Y += b.H
		b.H = -b.H
	}
	return b
}

func (b Box) Center() Point {
	return Point{b.X + b.W/2, b.Y + b.H/2}
}

func (b Box) TopLeft() Point     { return Point{b.X, b.Y} }
func (b Box) TopRight() Point    { return Point{b.X + b.W, b.Y} }
func (b Box) BottomLeft() Point  { return Point{b.X, b.Y + b.H} }
func (b Box) BottomRight() Point { return Point{b.X + b.W, b.Y + b.H} }

// Expand pads the box by n world units on every side. n may be
// negative to shrink (used for the snap engine's "shrunk interior"
// accessibility check).
func (b Box) Expand(n float64) Box {
	return Box{
		X: b.X - n,
		Y: b.Y - n,
		W: b.W + 2*n,
		H: b.H + 2*n,
	}
}

// ContainsPoint reports whether p lies within the box, inclusive of
// the boundary.
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// ContainsBox reports whether o is fully contained by b.
func (b Box) ContainsBox(o Box) bool {
	return o.X >= b.X && o.Y >= b.Y && o.X+o.W <= b.X+b.W && o.Y+o.H <= b.Y+b.H
}

// Corners returns the four corners in TL, TR, BR, BL order, rotated
// about the box's own center by deg degrees.
func (b Box) Corners(deg float64) [4]Point {
	center := b.Center()
	raw := [4]Point{b.TopLeft(), b.TopRight(), b.BottomRight(), b.BottomLeft()}
	if deg == 0 {
		return raw
	}
	for i, p := range raw {
		raw[i] = RotatePoint(p, center, deg)
	}
	return raw
}

// RotatedEnvelope returns the axis-aligned envelope of b after rotating
// it by deg degrees about its own center. Stored bounds never change;
// this is used when the state machine needs a world-space hit box for
// a rotated element (e.g. eraser hit-testing, box-select containment).
func (b Box) RotatedEnvelope(deg float64) Box {
	if deg == 0 {
		return b
	}
	corners := b.Corners(deg)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return Box{minX, minY, maxX - minX, maxY - minY}
}

// BoundsFromPoints returns the axis-aligned box spanning pts, padded by
// pad on every side (used by path-like bounding-box computation: pad =
// 2*stroke_width).
func BoundsFromPoints(pts []Point, pad float64) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Box{
		X: minX - pad,
		Y: minY - pad,
		W: (maxX - minX) + 2*pad,
		H: (maxY - minY) + 2*pad,
	}
}

// Handle identifies a resize handle or an edge treated as a handle.
type Handle string

const (
	HandleNW Handle = "nw"
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"
)

// OppositeHandle returns the handle diagonally (or axially) opposite h.
func OppositeHandle(h Handle) Handle {
	switch h {
	case HandleNW:
		return HandleSE
	case HandleN:
		return HandleS
	case HandleNE:
		return HandleSW
	case HandleE:
		return HandleW
	case HandleSE:
		return HandleNW
	case HandleS:
		return HandleN
	case HandleSW:
		return HandleNE
	case HandleW:
		return HandleE
	}
	return h
}

// HandlePoint returns the world point of handle h on box b (unrotated
// local frame; caller rotates if needed).
func HandlePoint(b Box, h Handle) Point {
	switch h {
	case HandleNW:
		return b.TopLeft()
	case HandleN:
		return Point{b.X + b.W/2, b.Y}
	case HandleNE:
		return b.TopRight()
	case HandleE:
		return Point{b.X + b.W, b.Y + b.H/2}
	case HandleSE:
		return b.BottomRight()
	case HandleS:
		return Point{b.X + b.W/2, b.Y + b.H}
	case HandleSW:
		return b.BottomLeft()
	case HandleW:
		return Point{b.X, b.Y + b.H/2}
	}
	return b.Center()
}

// HandleSign returns the (sx, sy) sign multiplier a handle applies to
// width/height deltas as the pointer moves: west/north edges shrink
// the box as the pointer moves toward positive X/Y (sx = -1), while
// east/south edges grow it (sx = +1). Axis handles leave the
// orthogonal sign at 0 (no effect on that axis).
func HandleSign(h Handle) (sx, sy float64) {
	switch h {
	case HandleNW:
		return -1, -1
	case HandleN:
		return 0, -1
	case HandleNE:
		return 1, -1
	case HandleE:
		return 1, 0
	case HandleSE:
		return 1, 1
	case HandleS:
		return 0, 1
	case HandleSW:
		return -1, 1
	case HandleW:
		return -1, 0
	}
	return 0, 0
}

// ResizeCursor returns the standard cursor label for handle h after
// the element has been rotated by deg degrees, by rotating the
// handle's unit direction and snapping to the nearest of the 8
// compass cursor directions. Mirrors how whiteboard apps keep resize
// cursors visually aligned with a rotated shape's edges.
func ResizeCursor(h Handle, deg float64) string {
	dirs := []string{"n", "ne", "e", "se", "s", "sw", "w", "nw"}
	base := map[Handle]float64{
		HandleN: 0, HandleNE: 45, HandleE: 90, HandleSE: 135,
		HandleS: 180, HandleSW: 225, HandleW: 270, HandleNW: 315,
	}
	angle := math.Mod(base[h]+deg, 360)
	if angle < 0 {
		angle += 360
	}
	idx := int(math.Round(angle/45)) % 8
	return dirs[idx] + "-resize"
}
