package boardinput

import (
	"context"
	"math"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardconn"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func (c *Controller) beginRotate(ctx context.Context, world geo.Point, elements []*boardgraph.Element) {
	sel := c.selectedElements(elements)
	if len(sel) == 0 {
		return
	}
	target := sel[0]
	if err := boardgraph.RequireNonDegenerateBounds(target); err != nil {
		c.abortToIdle(ctx, "rotate:begin", err)
		return
	}
	box := boardgraph.BoundingBox(target, c.TextMetrics)
	center := box.Center()
	c.state = State{
		Kind: Rotating,
		Rotate: RotateGesture{
			ElementID:         target.ID,
			Center:            center,
			StartPointerAngle: angleDegrees(center, world),
			StartRotation:     target.Rotation,
		},
	}
}

func angleDegrees(center, p geo.Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X) * 180 / math.Pi
}

// moveRotate implements spec §4.6's ROTATING pointer-move: rotation =
// start_rotation + (current_angle - start_pointer_angle), snapped to
// 15-degree steps with shift, with connector follow-ups batched into
// the same commit.
func (c *Controller) moveRotate(ctx context.Context, ev PointerEvent, world geo.Point) {
	g := c.state.Rotate
	current := angleDegrees(g.Center, world)
	rotation := g.StartRotation + (current - g.StartPointerAngle)
	if ev.Shift {
		rotation = math.Round(rotation/15) * 15
	}

	patches := map[string]boardgraph.Patch{g.ElementID: {Rotation: &rotation}}
	elements := c.applyPreview(c.elements(), patches)
	follow := boardconn.ConnectedArrowUpdates(map[string]bool{g.ElementID: true}, elements, c.TextMetrics)
	for id, p := range follow {
		patches[id] = p
	}

	if err := c.commitBatch(ctx, patches); err != nil {
		c.abortToIdle(ctx, "rotate:move", err)
	}
}
