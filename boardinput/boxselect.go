package boardinput

import (
	"math"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func (c *Controller) moveBoxSelect(world geo.Point) {
	c.state.LastWorld = world
	box := boxFrom(c.state.PointerDownWorld, world)
	if math.Max(box.W, box.H) < 5 {
		return
	}
	elements := c.elements()
	var ids []string
	for _, e := range elements {
		if e.Hidden || e.Locked || e.RemotelySelected {
			continue
		}
		if box.ContainsBox(boardgraph.WorldBounds(e, c.TextMetrics)) {
			ids = append(ids, e.ID)
		}
	}
	c.setSelection(ids...)
}

func boxFrom(a, b geo.Point) geo.Box {
	x, y := math.Min(a.X, b.X), math.Min(a.Y, b.Y)
	return geo.Box{X: x, Y: y, W: math.Abs(b.X - a.X), H: math.Abs(b.Y - a.Y)}
}

func (c *Controller) commitBoxSelect() {
	box := boxFrom(c.state.PointerDownWorld, c.state.LastWorld)
	if math.Max(box.W, box.H) < 5 {
		c.setSelection()
	}
}

func (c *Controller) moveLasso(world geo.Point) {
	if len(c.state.LassoPoints) > 0 {
		last := c.state.LassoPoints[len(c.state.LassoPoints)-1]
		if world.Dist(last) < 4 {
			c.state.LastWorld = world
			return
		}
	}
	c.state.LassoPoints = append(c.state.LassoPoints, world)
	c.state.LastWorld = world
	if len(c.state.LassoPoints) < 3 {
		return
	}
	elements := c.elements()
	var ids []string
	for _, e := range elements {
		if e.Hidden || e.Locked || e.RemotelySelected {
			continue
		}
		center := boardgraph.WorldBounds(e, c.TextMetrics).Center()
		if polygonContainsEvenOdd(c.state.LassoPoints, center) {
			ids = append(ids, e.ID)
		}
	}
	c.setSelection(ids...)
}

func (c *Controller) commitLasso() {
	if len(c.state.LassoPoints) < 3 {
		c.setSelection()
	}
}
