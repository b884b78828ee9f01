package boardinput

import (
	"context"
	"time"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardconn"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// moveDrag implements spec §4.6's DRAGGING pointer-move: every
// original_elements member translates by the cursor delta, and
// attached connectors get a throttled §4.5 follow-up merged into the
// same batch.
func (c *Controller) moveDrag(ctx context.Context, world geo.Point) {
	delta := world.Sub(c.state.PointerDownWorld)
	if !c.state.HasDragMoved && delta.Dist(geo.Point{}) >= 3 {
		c.state.HasDragMoved = true
	}
	c.state.LastWorld = world

	patches := make(map[string]boardgraph.Patch, len(c.state.Original))
	movedIDs := make(map[string]bool, len(c.state.Original))
	for _, orig := range c.state.Original {
		movedIDs[orig.ID] = true
		patches[orig.ID] = dragPatch(orig, delta)
	}

	elements := c.applyPreview(c.elements(), patches)
	follow := c.connThrottle.Call(time.Now(), func() batchResult {
		return boardconn.ConnectedArrowUpdates(movedIDs, elements, c.TextMetrics)
	})
	for id, p := range follow {
		if movedIDs[id] {
			continue
		}
		patches[id] = p
	}

	if err := c.commitBatch(ctx, patches); err != nil {
		c.abortToIdle(ctx, "drag:move", err)
	}
}

func dragPatch(e *boardgraph.Element, delta geo.Point) boardgraph.Patch {
	if e.Kind.IsPathLike() {
		pts := make([]geo.Point, len(e.Points))
		for i, p := range e.Points {
			pts[i] = p.Add(delta)
		}
		return boardgraph.Patch{Points: pts}
	}
	x, y := e.X+delta.X, e.Y+delta.Y
	return boardgraph.Patch{X: &x, Y: &y}
}

// applyPreview returns an element snapshot with patches applied
// in-memory, without touching the Store, so connection maintenance
// can be computed against the tentative post-move state before it is
// committed.
func (c *Controller) applyPreview(elements []*boardgraph.Element, patches map[string]boardgraph.Patch) []*boardgraph.Element {
	out := make([]*boardgraph.Element, len(elements))
	for i, e := range elements {
		p, ok := patches[e.ID]
		if !ok {
			out[i] = e
			continue
		}
		clone := e.Clone()
		applyPatchInPlace(clone, p)
		out[i] = clone
	}
	return out
}
