package boardinput

import (
	"context"
	"time"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardsnap"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// PointerDown begins a gesture (spec §4.6's pointer-down transitions).
func (c *Controller) PointerDown(ctx context.Context, ev PointerEvent) {
	world := c.toWorld(ev)

	if ev.Button == ButtonMiddle || (c.Tool == boardgraph.ToolHand && ev.Button == ButtonLeft) {
		c.state = State{Kind: Panning, PanStart: world}
		return
	}
	if c.Toolbar.IsReadOnly {
		return
	}

	if c.Tool == boardgraph.ToolLasso {
		c.setSelection()
		c.state = State{Kind: LassoSelecting, LassoPoints: []geo.Point{world}}
		return
	}

	if c.Tool == boardgraph.ToolSelect {
		c.pointerDownSelect(ctx, ev, world)
		return
	}

	c.beginDrawing(ctx, world)
}

func (c *Controller) pointerDownSelect(ctx context.Context, ev PointerEvent, world geo.Point) {
	elements := c.elements()

	if ev.Detail >= 2 {
		if target := hitTestElement(world, elements, c.TextMetrics); target != nil && target.Kind == boardgraph.KindText {
			c.state = State{Kind: TextEditing, TextEditElementID: target.ID}
			return
		}
	}

	if sel := c.selectedElements(elements); len(sel) == 1 && sel[0].Kind.IsConnector() {
		if index, ok := hitTestConnectorPoint(world, sel[0], c.Zoom); ok {
			c.beginConnectorDrag(sel[0], index, world)
			return
		}
	}

	hit := c.hitTestSelection(world, elements)
	switch hit.Kind {
	case HitRotateHandle:
		c.beginRotate(ctx, world, elements)
		return
	case HitResizeHandle:
		c.beginResize(hit.Handle, world, elements)
		return
	case HitInterior:
		c.beginDrag(world, elements)
		return
	}

	if target := hitTestElement(world, elements, c.TextMetrics); target != nil {
		if target.Kind == boardgraph.KindFrame {
			members := append([]*boardgraph.Element{target}, frameDescendants(elements, target.ID)...)
			ids := idsOf(members)
			c.setSelection(ids...)
			c.beginDrag(world, elements)
			return
		}
		members := groupMembers(elements, target)
		c.setSelection(idsOf(members)...)
		c.beginDrag(world, elements)
		return
	}

	c.setSelection()
	c.state = State{Kind: BoxSelecting, PointerDownWorld: world, LastWorld: world}
}

func frameDescendants(elements []*boardgraph.Element, frameID string) []*boardgraph.Element {
	g := boardgraph.NewGraph(elements)
	return g.FrameDescendants(frameID)
}

func idsOf(elements []*boardgraph.Element) []string {
	out := make([]string, len(elements))
	for i, e := range elements {
		out[i] = e.ID
	}
	return out
}

func (c *Controller) beginDrag(world geo.Point, elements []*boardgraph.Element) {
	c.state = State{
		Kind:             Dragging,
		PointerDownWorld: world,
		LastWorld:        world,
		Original:         cloneAll(c.selectedElements(elements)),
	}
}

func cloneAll(elements []*boardgraph.Element) []*boardgraph.Element {
	out := make([]*boardgraph.Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}

// PointerMove advances the active gesture (spec §4.6's pointer-move
// behaviors).
func (c *Controller) PointerMove(ctx context.Context, ev PointerEvent) {
	world := c.toWorld(ev)
	switch c.state.Kind {
	case Panning:
		delta := world.Sub(c.state.PanStart)
		c.Pan = c.Pan.Add(delta)
	case LassoSelecting:
		c.moveLasso(world)
	case BoxSelecting:
		c.moveBoxSelect(world)
	case Rotating:
		c.moveRotate(ctx, ev, world)
	case ConnectorPointDrag:
		c.moveConnectorDrag(ctx, world)
	case Dragging:
		c.moveDrag(ctx, world)
	case Resizing:
		c.moveResize(ctx, ev, world)
	case Drawing:
		c.moveDrawing(ctx, world)
	case Erasing:
		c.moveErase(world)
	}
	if c.Collab != nil {
		c.Collab.UpdateCursor(world.X, world.Y)
	}
}

// PointerUp commits the active gesture and returns to idle (spec
// §4.6's pointer-up commit semantics).
func (c *Controller) PointerUp(ctx context.Context, ev PointerEvent) {
	world := c.toWorld(ev)
	switch c.state.Kind {
	case Erasing:
		c.commitErase(ctx)
	case BoxSelecting:
		c.commitBoxSelect()
	case LassoSelecting:
		c.commitLasso()
	case ConnectorPointDrag:
		c.commitConnectorDrag(ctx)
	case Drawing:
		c.commitDrawing(ctx, world)
	case Dragging, Resizing, Rotating:
		c.switchToolIfNeeded()
	}
	c.state = State{}
}

func (c *Controller) switchToolIfNeeded() {
	if !c.Toolbar.IsToolLocked {
		c.Tool = boardgraph.ToolSelect
	}
}

// accessibleSnap wraps boardsnap.FindNearestSnapTarget behind the
// 32ms search throttle (spec §4.8).
func (c *Controller) accessibleSnap(world geo.Point, elements []*boardgraph.Element, excludeID string, style boardgraph.ConnectorStyle, other *geo.Point) (boardsnap.Result, bool) {
	res := c.snapThrottle.Call(time.Now(), func() snapResult {
		r, ok := boardsnap.FindNearestSnapTarget(world, elements, excludeID, 20/nonZero(c.Zoom), style, other, c.TextMetrics)
		if !ok {
			return snapResult{}
		}
		return snapResult{found: true, target: r.TargetID, pos: r.Position, point: r.Point, outOfSight: r.OutOfLineOfSight}
	})
	if !res.found {
		return boardsnap.Result{}, false
	}
	return boardsnap.Result{Point: res.point, Position: res.pos, TargetID: res.target, OutOfLineOfSight: res.outOfSight}, true
}

func nonZero(z float64) float64 {
	if z == 0 {
		return 1
	}
	return z
}
