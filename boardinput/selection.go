package boardinput

import (
	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// HitKind is what pointer-down landed on, in the priority order spec
// §4.6 specifies: rotate handle, then resize handle, then the
// edge-as-handle zone (single selection only), then the selection
// interior, then an unselected element, then empty canvas.
type HitKind int

const (
	HitNone HitKind = iota
	HitRotateHandle
	HitResizeHandle
	HitInterior
	HitUnselectedElement
	HitEmpty
)

// Hit is the outcome of hitTestSelection.
type Hit struct {
	Kind    HitKind
	Handle  geo.Handle
	Element *boardgraph.Element
}

// selectedElements resolves the current selection against elements,
// in stable order.
func (c *Controller) selectedElements(elements []*boardgraph.Element) []*boardgraph.Element {
	var out []*boardgraph.Element
	for _, e := range elements {
		if c.Selection[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// selectionBounds returns the world-space envelope of the current
// selection: a single element's stored (unrotated) bounds plus its
// rotation if exactly one is selected (so handle math can stay in that
// element's own rotated frame), or the union of every selected
// element's rotated envelope, with rotation 0, for a multi-selection.
func selectionBounds(sel []*boardgraph.Element, tm boardgraph.TextMetrics) (box geo.Box, rotation float64, ok bool) {
	if len(sel) == 0 {
		return geo.Box{}, 0, false
	}
	if len(sel) == 1 {
		return boardgraph.BoundingBox(sel[0], tm), sel[0].Rotation, true
	}
	first := boardgraph.WorldBounds(sel[0], tm)
	minX, minY := first.X, first.Y
	maxX, maxY := first.X+first.W, first.Y+first.H
	for _, e := range sel[1:] {
		b := boardgraph.WorldBounds(e, tm)
		minX = minF(minX, b.X)
		minY = minF(minY, b.Y)
		maxX = maxF(maxX, b.X+b.W)
		maxY = maxF(maxY, b.Y+b.H)
	}
	return geo.Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, 0, true
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// rotateHandlePoint returns the world point of the rotate handle:
// offset 28 units outside the box's top edge midpoint, then rotated
// into the box's own frame.
func rotateHandlePoint(b geo.Box, rotation float64) geo.Point {
	local := geo.Point{X: b.X + b.W/2, Y: b.Y - 28}
	return geo.RotatePoint(local, b.Center(), rotation)
}

// hitTestSelection implements the select-tool pointer-down priority
// order against the current selection bounds: rotate handle, resize
// handles (corners always, + edge midpoints for multi-selection),
// the single-selection edge-as-handle zone, then interior.
func (c *Controller) hitTestSelection(world geo.Point, elements []*boardgraph.Element) Hit {
	sel := c.selectedElements(elements)
	if len(sel) == 0 {
		return Hit{Kind: HitNone}
	}
	box, rotation, ok := selectionBounds(sel, c.TextMetrics)
	if !ok {
		return Hit{Kind: HitNone}
	}
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}

	if rp := rotateHandlePoint(box, rotation); world.Dist(rp) <= 4/zoom {
		return Hit{Kind: HitRotateHandle}
	}

	handles := []geo.Handle{geo.HandleNW, geo.HandleNE, geo.HandleSE, geo.HandleSW}
	if len(sel) > 1 {
		handles = append(handles, geo.HandleN, geo.HandleE, geo.HandleS, geo.HandleW)
	}
	tol := 10 / zoom
	for _, h := range handles {
		hp := geo.RotatePoint(geo.HandlePoint(box, h), box.Center(), rotation)
		if world.Dist(hp) <= tol {
			return Hit{Kind: HitResizeHandle, Handle: h}
		}
	}

	if len(sel) == 1 {
		local := world
		if rotation != 0 {
			local = geo.RotatePoint(world, box.Center(), -rotation)
		}
		if h, onEdge := edgeZoneHandle(box, local, tol); onEdge {
			return Hit{Kind: HitResizeHandle, Handle: h}
		}
	}

	if box.ContainsPoint(rotateLocal(world, box, rotation)) {
		for _, e := range sel {
			if boardgraph.WorldBounds(e, c.TextMetrics).ContainsPoint(world) {
				return Hit{Kind: HitInterior, Element: e}
			}
		}
		// Inside the selection frame but not any individual member's
		// own bounds (a gap in a multi-selection): still counts as
		// dragging the selection, anchored on the first member.
		return Hit{Kind: HitInterior, Element: sel[0]}
	}
	return Hit{Kind: HitNone}
}

func rotateLocal(p geo.Point, box geo.Box, rotation float64) geo.Point {
	if rotation == 0 {
		return p
	}
	return geo.RotatePoint(p, box.Center(), -rotation)
}

func edgeZoneHandle(box geo.Box, local geo.Point, tol float64) (geo.Handle, bool) {
	near := func(a, b geo.Point) bool { return geo.DistanceToSegment(local, a, b) <= tol }
	switch {
	case near(box.TopLeft(), box.TopRight()):
		return geo.HandleN, true
	case near(box.TopRight(), box.BottomRight()):
		return geo.HandleE, true
	case near(box.BottomLeft(), box.BottomRight()):
		return geo.HandleS, true
	case near(box.TopLeft(), box.BottomLeft()):
		return geo.HandleW, true
	}
	return "", false
}

// hitTestConnectorPoint finds the closest point index on e's polyline
// within 10/zoom of world, for starting a CONNECTOR_POINT_DRAG against
// the sole selected connector.
func hitTestConnectorPoint(world geo.Point, e *boardgraph.Element, zoom float64) (int, bool) {
	if zoom == 0 {
		zoom = 1
	}
	tol := 10 / zoom
	best, bestDist := -1, tol
	for i, p := range e.Points {
		if d := world.Dist(p); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// hitTestElement finds the topmost (last in z/draw order) non-hidden,
// non-locked element whose world bounds contain world, for clicks that
// land outside the current selection.
func hitTestElement(world geo.Point, elements []*boardgraph.Element, tm boardgraph.TextMetrics) *boardgraph.Element {
	var best *boardgraph.Element
	for _, e := range elements {
		if e.Hidden || e.Locked || e.RemotelySelected || e.Kind == boardgraph.KindLaser {
			continue
		}
		if boardgraph.WorldBounds(e, tm).ContainsPoint(world) {
			best = e
		}
	}
	return best
}

// groupMembers returns e plus every non-hidden/locked/remote sibling
// sharing its group id, via a freshly built Graph index.
func groupMembers(elements []*boardgraph.Element, e *boardgraph.Element) []*boardgraph.Element {
	g := boardgraph.NewGraph(elements)
	return g.GroupMembers(e)
}

// polygonContainsEvenOdd implements the even-odd rule lasso selection
// uses to decide which element centers fall inside.
func polygonContainsEvenOdd(poly []geo.Point, p geo.Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := range poly {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntersect := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
