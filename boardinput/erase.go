package boardinput

import (
	"context"

	"oss.terrastruct.com/boardlogic/boarderase"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// moveErase accumulates newly touched element ids along the eraser's
// travel since the last tick (spec §4.7).
func (c *Controller) moveErase(world geo.Point) {
	prev := c.state.LastWorld
	c.state.LastWorld = world
	newly := boarderase.MarkedForErase(prev, world, c.state.Original, c.TextMetrics, c.state.ErasedIDs)
	for _, id := range newly {
		c.state.ErasedIDs[id] = true
	}
}

// commitErase applies the accumulated erase set through the delete
// port (spec §4.6's ERASING pointer-up rule).
func (c *Controller) commitErase(ctx context.Context) {
	if len(c.state.ErasedIDs) == 0 {
		return
	}
	ids := make([]string, 0, len(c.state.ErasedIDs))
	for id := range c.state.ErasedIDs {
		ids = append(ids, id)
	}
	if err := c.Store.DeleteMany(ctx, ids); err != nil {
		c.abortToIdle(ctx, "erase:commit", err)
	}
}
