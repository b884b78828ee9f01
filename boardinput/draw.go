package boardinput

import (
	"context"
	"math"
	"time"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardroute"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func toolDrawKind(tool boardgraph.Tool) (boardgraph.Kind, bool) {
	switch tool {
	case boardgraph.ToolPen, boardgraph.ToolHighlighter:
		return boardgraph.KindPen, true
	case boardgraph.ToolLine:
		return boardgraph.KindLine, true
	case boardgraph.ToolArrow:
		return boardgraph.KindArrow, true
	case boardgraph.ToolRectangle:
		return boardgraph.KindRectangle, true
	case boardgraph.ToolDiamond:
		return boardgraph.KindDiamond, true
	case boardgraph.ToolEllipse:
		return boardgraph.KindEllipse, true
	case boardgraph.ToolFrame:
		return boardgraph.KindFrame, true
	case boardgraph.ToolLaser:
		return boardgraph.KindLaser, true
	case boardgraph.ToolText:
		return boardgraph.KindText, true
	case boardgraph.ToolEraser:
		return "", false
	}
	return "", false
}

func (c *Controller) beginDrawing(ctx context.Context, world geo.Point) {
	kind, ok := toolDrawKind(c.Tool)
	if !ok {
		if c.Tool == boardgraph.ToolEraser {
			c.state = State{Kind: Erasing, PointerDownWorld: world, LastWorld: world, Original: cloneAll(c.elements()), ErasedIDs: make(map[string]bool)}
		}
		return
	}

	id := c.IDGen()
	st := State{Kind: Drawing, DrawingKind: kind, DrawingElementID: id, PointerDownWorld: world, LastWorld: world}

	if kind.IsConnector() {
		if snap, found := c.accessibleSnap(world, c.elements(), "", c.Toolbar.ConnectorStyle, nil); found {
			st.HasStartSnap = true
			st.StartSnapTargetID = snap.TargetID
			st.StartSnapPosition = snap.Position
			world = snap.Point
			st.PointerDownWorld = world
			st.LastWorld = world
		}
	}
	c.state = st

	e := &boardgraph.Element{
		ID:          id,
		Kind:        kind,
		StrokeColor: c.Toolbar.StrokeColor,
		StrokeWidth: c.Toolbar.StrokeWidth,
		Opacity:     c.Toolbar.Opacity,
	}
	switch {
	case kind.IsPathLike():
		e.Points = []geo.Point{world, world}
		if kind.IsConnector() {
			e.ConnectorStyle = c.Toolbar.ConnectorStyle
		}
	default:
		e.X, e.Y = world.X, world.Y
	}
	if kind == boardgraph.KindText {
		e.FontSize, e.FontFamily, e.TextAlign = c.Toolbar.FontSize, c.Toolbar.FontFamily, c.Toolbar.TextAlign
	}
	if kind == boardgraph.KindLaser {
		e.Timestamp = time.Now().UnixMilli()
	}
	if err := c.Store.Add(ctx, e); err != nil {
		c.abortToIdle(ctx, "draw:add", err)
	}
}

func (c *Controller) moveDrawing(ctx context.Context, world geo.Point) {
	c.state.LastWorld = world
	kind := c.state.DrawingKind

	if kind.IsPathLike() {
		if !kind.IsConnector() {
			c.appendPenPoint(ctx, world)
			return
		}
		c.updateConnectorPreview(ctx, world)
		return
	}

	x, y := math.Min(c.state.PointerDownWorld.X, world.X), math.Min(c.state.PointerDownWorld.Y, world.Y)
	w, h := math.Abs(world.X-c.state.PointerDownWorld.X), math.Abs(world.Y-c.state.PointerDownWorld.Y)
	if err := c.Store.Update(ctx, c.state.DrawingElementID, boardgraph.Patch{X: &x, Y: &y, W: &w, H: &h}); err != nil {
		c.abortToIdle(ctx, "draw:resize-preview", err)
	}
}

func (c *Controller) appendPenPoint(ctx context.Context, world geo.Point) {
	elements := c.elements()
	e := findByID(elements, c.state.DrawingElementID)
	if e == nil {
		return
	}
	points := append(append([]geo.Point(nil), e.Points...), world)
	if err := c.Store.Update(ctx, e.ID, boardgraph.Patch{Points: points}); err != nil {
		c.abortToIdle(ctx, "draw:pen-append", err)
	}
}

// updateConnectorPreview implements the branching described in spec
// §4.6 for drawing a connector: near a shape, snap; the preview route
// depends on the toolbar's connector style and whether the start was
// also snapped.
func (c *Controller) updateConnectorPreview(ctx context.Context, world geo.Point) {
	elements := c.elements()
	start := c.state.PointerDownWorld
	end := world
	style := c.Toolbar.ConnectorStyle

	var endSnapID string
	var endPos boardgraph.Position
	snapped, outOfSight := false, false
	if snap, found := c.accessibleSnap(world, elements, "", style, &start); found {
		endSnapID, endPos, snapped = snap.TargetID, snap.Position, true
		outOfSight = snap.OutOfLineOfSight
		end = snap.Point
	}
	_ = endPos

	points := []geo.Point{start, end}
	switch {
	case style == boardgraph.StyleElbow:
		points = elbowPreview(start, end, elements, c.state.DrawingElementID, c.state.StartSnapTargetID, endSnapID, c.TextMetrics)
	case style == boardgraph.StyleCurved:
		points = curvedPreview(start, end, elements, c.state.DrawingElementID, c.state.StartSnapTargetID, endSnapID, c.TextMetrics)
	case style == boardgraph.StyleSharp && snapped && outOfSight:
		// A self-connection always reports out of sight against its
		// own shrunk interior; any other tunnel does too. A clear
		// straight shot between two snapped shapes, as in a plain
		// two-shape connection, stays sharp.
		points = elbowPreview(start, end, elements, c.state.DrawingElementID, c.state.StartSnapTargetID, endSnapID, c.TextMetrics)
	}

	if err := c.Store.Update(ctx, c.state.DrawingElementID, boardgraph.Patch{Points: points}); err != nil {
		c.abortToIdle(ctx, "draw:connector-preview", err)
	}
}

func findByID(elements []*boardgraph.Element, id string) *boardgraph.Element {
	for _, e := range elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// commitDrawing implements spec §4.6's DRAWING commit rules per kind.
func (c *Controller) commitDrawing(ctx context.Context, world geo.Point) {
	id := c.state.DrawingElementID
	elements := c.elements()
	e := findByID(elements, id)
	if e == nil {
		c.switchToolIfNeeded()
		return
	}

	switch e.Kind {
	case boardgraph.KindPen:
		c.commitPen(ctx, e)
	case boardgraph.KindLine, boardgraph.KindArrow:
		c.commitConnectorDraw(ctx, e, world)
	case boardgraph.KindLaser:
		// Lasers commit as-is; the renderer owns fade scheduling from
		// Timestamp, which beginDrawing sets at creation.
	case boardgraph.KindRectangle, boardgraph.KindDiamond, boardgraph.KindEllipse, boardgraph.KindFrame:
		if e.W <= 2 || e.H <= 2 {
			_ = c.Store.Delete(ctx, id)
		}
	}

	if e.Kind != boardgraph.KindPen {
		c.switchToolIfNeeded()
	}
}

func (c *Controller) commitPen(ctx context.Context, e *boardgraph.Element) {
	if len(e.Points) < 3 {
		return
	}
	first, last := e.Points[0], e.Points[len(e.Points)-1]
	closed := first.Dist(last) < 8 || pathSelfIntersects(e.Points)
	if !closed {
		return
	}
	patch := boardgraph.Patch{IsClosed: &closed}
	if c.Toolbar.FillPattern == boardgraph.FillSolid {
		fill := e.StrokeColor
		if e.FillColor != "" {
			fill = e.FillColor
		}
		patch.FillColor = &fill
	}
	if err := c.Store.Update(ctx, e.ID, patch); err != nil {
		c.abortToIdle(ctx, "draw:commit-pen", err)
	}
}

func pathSelfIntersects(pts []geo.Point) bool {
	for i := 0; i+1 < len(pts); i++ {
		for j := i + 2; j+1 < len(pts); j++ {
			if i == 0 && j+1 == len(pts)-1 {
				continue // adjacent to the closure segment, not a crossing
			}
			if geo.SegmentsIntersect(pts[i], pts[i+1], pts[j], pts[j+1]) {
				return true
			}
		}
	}
	return false
}

func (c *Controller) commitConnectorDraw(ctx context.Context, e *boardgraph.Element, world geo.Point) {
	if err := boardgraph.RequireConnectorPoints(e); err != nil {
		_ = c.Store.Delete(ctx, e.ID)
		c.abortToIdle(ctx, "draw:commit-connector", err)
		return
	}
	patch := boardgraph.Patch{}
	if c.state.HasStartSnap {
		patch.StartConnection = &boardgraph.Connection{ElementID: c.state.StartSnapTargetID, Position: c.state.StartSnapPosition}
	}

	startID := c.state.StartSnapTargetID
	endID, outOfSight := "", false
	if snap, found := c.accessibleSnap(world, c.elements(), e.ID, e.ConnectorStyle, &e.Points[0]); found {
		patch.EndConnection = &boardgraph.Connection{ElementID: snap.TargetID, Position: snap.Position}
		endID = snap.TargetID
		outOfSight = snap.OutOfLineOfSight
	}

	if e.ConnectorStyle == boardgraph.StyleSharp && outOfSight {
		start, end := e.Points[0], e.Points[len(e.Points)-1]
		routed := boardroute.ElbowRouteAroundObstacles(start, end, c.elements(), e.ID, startID, endID, c.TextMetrics)
		elbow := boardgraph.StyleElbow
		patch.ConnectorStyle = &elbow
		patch.ClearElbowRoute = true
		patch.Points = routed
	}

	if err := c.Store.Update(ctx, e.ID, patch); err != nil {
		c.abortToIdle(ctx, "draw:commit-connector", err)
	}
}
