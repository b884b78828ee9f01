package boardinput

import (
	"context"
	"math"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardroute"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// beginConnectorDrag classifies which of the six CONNECTOR_POINT_DRAG
// sub-kinds a pointer-down on connector point index hit, per spec
// §4.6.
func (c *Controller) beginConnectorDrag(e *boardgraph.Element, index int, world geo.Point) {
	g := ConnectorDragGesture{ElementID: e.ID, Index: index}

	switch {
	case e.ConnectorStyle == boardgraph.StyleCurved && len(e.Points) >= 3 && index > 0 && index < len(e.Points)-1:
		g.Kind = DragCurvedMid
	case len(e.Points) == 2 && index == 1:
		g.Kind = DragCreateCorner
	case index == 0 || index == len(e.Points)-1:
		g.Kind = DragElbowEndpoint
		g.IsStartEndpoint = index == 0
	case e.ConnectorStyle == boardgraph.StyleElbow:
		g.Kind = DragElbowOrtho
		g.Axis, g.RangeStart, g.RangeEnd, g.Anchor = elbowRunAt(e.Points, index)
	default:
		g.Kind = DragElbowHandle
		g.Axis, g.RangeStart, g.RangeEnd, g.Anchor = elbowRunAt(e.Points, index)
	}

	c.state = State{
		Kind:             ConnectorPointDrag,
		PointerDownWorld: world,
		LastWorld:        world,
		ConnectorDrag:    g,
		Original:         []*boardgraph.Element{e.Clone()},
	}
}

// elbowRunAt finds the contiguous index range sharing the axis that
// segment [index-1, index] and [index, index+1] run along, and the
// anchor point the run is measured from (the point just before the
// range, or the point just after it when the range starts at index 0;
// for an endpoint index, the point itself).
func elbowRunAt(points []geo.Point, index int) (axis string, r0, r1 int, anchor geo.Point) {
	if index <= 0 || index >= len(points)-1 {
		return "x", index, index, points[index]
	}
	prev, cur := points[index-1], points[index]
	axis = "y"
	if math.Abs(cur.X-prev.X) > math.Abs(cur.Y-prev.Y) {
		axis = "x"
	}

	r0, r1 = index, index
	for r0 > 0 && sameAxis(points[r0-1], points[r0], axis) {
		r0--
	}
	for r1 < len(points)-1 && sameAxis(points[r1], points[r1+1], axis) {
		r1++
	}
	anchorIdx := r0 - 1
	if anchorIdx < 0 {
		anchorIdx = r1 + 1
		if anchorIdx > len(points)-1 {
			anchorIdx = len(points) - 1
		}
	}
	return axis, r0, r1, points[anchorIdx]
}

func sameAxis(a, b geo.Point, axis string) bool {
	eps := geo.ZoomEpsilon(1)
	if axis == "x" {
		return math.Abs(a.Y-b.Y) < eps
	}
	return math.Abs(a.X-b.X) < eps
}

// moveConnectorDrag implements spec §4.6's per-kind CONNECTOR_POINT_DRAG
// pointer-move rules.
func (c *Controller) moveConnectorDrag(ctx context.Context, world geo.Point) {
	g := c.state.ConnectorDrag
	e := c.state.Original[0]
	points := append([]geo.Point(nil), e.Points...)

	switch g.Kind {
	case DragElbowOrtho, DragElbowEdge, DragElbowHandle:
		delta := 0.0
		if g.Axis == "x" {
			delta = world.X - g.Anchor.X
		} else {
			delta = world.Y - g.Anchor.Y
		}
		for i := g.RangeStart; i <= g.RangeEnd; i++ {
			if g.Axis == "x" {
				points[i].X = g.Anchor.X + delta
			} else {
				points[i].Y = g.Anchor.Y + delta
			}
		}

	case DragCurvedMid:
		points[g.Index] = world

	case DragCreateCorner:
		points = c.connectorCornerPreview(e, world)

	case DragElbowEndpoint:
		points = c.connectorEndpointPreview(e, points, g, world)
	}

	if err := c.Store.Update(ctx, e.ID, boardgraph.Patch{Points: points}); err != nil {
		c.abortToIdle(ctx, "connectordrag:move", err)
		return
	}
	c.state.LastWorld = world
}

func (c *Controller) connectorCornerPreview(e *boardgraph.Element, world geo.Point) []geo.Point {
	start, end := e.Points[0], e.Points[len(e.Points)-1]
	switch e.ConnectorStyle {
	case boardgraph.StyleCurved:
		return []geo.Point{start, world, end}
	case boardgraph.StyleElbow:
		if math.Abs(world.X-start.X) >= math.Abs(world.Y-start.Y) {
			return []geo.Point{start, {X: world.X, Y: start.Y}, world, {X: end.X, Y: world.Y}, end}
		}
		return []geo.Point{start, {X: start.X, Y: world.Y}, world, {X: world.X, Y: end.Y}, end}
	default:
		return []geo.Point{start, world, end}
	}
}

func (c *Controller) connectorEndpointPreview(e *boardgraph.Element, points []geo.Point, g ConnectorDragGesture, world geo.Point) []geo.Point {
	var adjIdx int
	if g.IsStartEndpoint {
		points[0] = world
		adjIdx = 1
	} else {
		points[len(points)-1] = world
		adjIdx = len(points) - 2
	}
	if adjIdx > 0 && adjIdx < len(points)-1 && e.ConnectorStyle == boardgraph.StyleElbow {
		// Preserve the next segment's axis by sliding the adjacent
		// bend point along whichever axis it already shared.
		neighborOut := points[adjIdx]
		far := points[adjIdx-1]
		if g.IsStartEndpoint {
			far = points[adjIdx+1]
		}
		if math.Abs(neighborOut.X-far.X) < geo.ZoomEpsilon(1) {
			points[adjIdx] = geo.Point{X: far.X, Y: world.Y}
		} else {
			points[adjIdx] = geo.Point{X: world.X, Y: far.Y}
		}
	}

	elements := c.elements()
	other := points[0]
	if g.IsStartEndpoint {
		other = points[len(points)-1]
	}
	startElementID, endElementID := connectionElementIDs(e)
	if snap, found := c.accessibleSnap(world, elements, e.ID, e.ConnectorStyle, &other); found {
		c.state.ConnectorDrag.HasSnap = true
		c.state.ConnectorDrag.SnapTargetID = snap.TargetID
		c.state.ConnectorDrag.SnapPosition = snap.Position
		c.state.ConnectorDrag.OutOfSight = snap.OutOfLineOfSight

		startID, endID := startElementID, endElementID
		if g.IsStartEndpoint {
			startID = snap.TargetID
		} else {
			endID = snap.TargetID
		}
		start, end := points[0], points[len(points)-1]
		if g.IsStartEndpoint {
			start = snap.Point
		} else {
			end = snap.Point
		}
		return routeForStyle(e.ConnectorStyle, start, end, elements, e.ID, startID, endID, c.TextMetrics)
	}

	c.state.ConnectorDrag.HasSnap = false
	oppositeID := endElementID
	if g.IsStartEndpoint {
		oppositeID = startElementID
	}
	if oppositeID != "" {
		start, end := points[0], points[len(points)-1]
		startID, endID := "", oppositeID
		if g.IsStartEndpoint {
			startID, endID = oppositeID, ""
		}
		return routeForStyle(e.ConnectorStyle, start, end, elements, e.ID, startID, endID, c.TextMetrics)
	}
	return points
}

func routeForStyle(style boardgraph.ConnectorStyle, start, end geo.Point, elements []*boardgraph.Element, excludeID, startID, endID string, tm boardgraph.TextMetrics) []geo.Point {
	switch style {
	case boardgraph.StyleCurved:
		return boardroute.CurvedRouteAroundObstacles(start, end, elements, excludeID, startID, endID, tm)
	case boardgraph.StyleElbow:
		return boardroute.ElbowRouteAroundObstacles(start, end, elements, excludeID, startID, endID, tm)
	default:
		return []geo.Point{start, end}
	}
}

// commitConnectorDrag implements spec §4.6's CONNECTOR_POINT_DRAG
// commit rules: snap-driven connection writes, sharp-out-of-sight
// escalation to elbow, and post-edge-drag collinear-run simplification.
func (c *Controller) commitConnectorDrag(ctx context.Context) {
	g := c.state.ConnectorDrag
	e := findByID(c.elements(), g.ElementID)
	if e == nil {
		return
	}
	patch := boardgraph.Patch{}

	if g.Kind == DragElbowEndpoint {
		if e.ConnectorStyle == boardgraph.StyleSharp && g.HasSnap && g.OutOfSight {
			start, end := e.Points[0], e.Points[len(e.Points)-1]
			startID, endID := connectionElementIDs(e)
			if g.IsStartEndpoint {
				startID = g.SnapTargetID
			} else {
				endID = g.SnapTargetID
			}
			routed := boardroute.ElbowRouteAroundObstacles(start, end, c.elements(), e.ID, startID, endID, c.TextMetrics)
			elbow := boardgraph.StyleElbow
			patch.ConnectorStyle = &elbow
			patch.ClearElbowRoute = true
			patch.Points = routed
		}
		if g.HasSnap {
			conn := &boardgraph.Connection{ElementID: g.SnapTargetID, Position: g.SnapPosition}
			if g.IsStartEndpoint {
				patch.StartConnection = conn
			} else {
				patch.EndConnection = conn
			}
		} else {
			if g.IsStartEndpoint {
				patch.ClearStartConnection = true
			} else {
				patch.ClearEndConnection = true
			}
		}
	}

	if g.Kind == DragElbowOrtho || g.Kind == DragElbowEdge || g.Kind == DragElbowHandle {
		pts := e.Points
		if patch.Points != nil {
			pts = patch.Points
		}
		if simplified, changed := simplifyCollinear(pts, 0.5/nonZero(c.Zoom)); changed {
			patch.Points = simplified
		}
	}

	if err := c.commitPatch(ctx, e.ID, patch); err != nil {
		c.abortToIdle(ctx, "connectordrag:commit", err)
	}
}

func (c *Controller) commitPatch(ctx context.Context, id string, patch boardgraph.Patch) error {
	return c.Store.Update(ctx, id, patch)
}

func connectionElementIDs(e *boardgraph.Element) (startID, endID string) {
	if e.StartConnection != nil {
		startID = e.StartConnection.ElementID
	}
	if e.EndConnection != nil {
		endID = e.EndConnection.ElementID
	}
	return startID, endID
}

// simplifyCollinear removes interior points that share their X (or
// their Y) with both neighbors within tol, as long as no diagonal
// segment results (spec §4.6's elbow-cleanup rule). Points on a
// diagonal line are not removed.
func simplifyCollinear(points []geo.Point, tol float64) ([]geo.Point, bool) {
	if len(points) < 3 {
		return points, false
	}
	out := []geo.Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		prev, cur, next := out[len(out)-1], points[i], points[i+1]
		if isCollinearOrtho(prev, cur, next, tol) {
			continue
		}
		out = append(out, cur)
	}
	out = append(out, points[len(points)-1])
	if !isOrthogonalPath(out) {
		return points, false
	}
	return out, len(out) != len(points)
}

func isCollinearOrtho(a, b, c geo.Point, tol float64) bool {
	sameX := math.Abs(a.X-b.X) < tol && math.Abs(b.X-c.X) < tol
	sameY := math.Abs(a.Y-b.Y) < tol && math.Abs(b.Y-c.Y) < tol
	return sameX || sameY
}

func isOrthogonalPath(points []geo.Point) bool {
	eps := geo.ZoomEpsilon(1)
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if math.Abs(a.X-b.X) > eps && math.Abs(a.Y-b.Y) > eps {
			return false
		}
	}
	return true
}
