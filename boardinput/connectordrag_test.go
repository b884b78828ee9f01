package boardinput

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// Dragging a sharp connector's free endpoint onto a shape it can reach
// but not see in a straight line escalates the connector to an elbow
// route on commit.
func TestConnectorPointDragEscalatesOnOutOfSight(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	addElement(t, c.Store, &boardgraph.Element{ID: "obstacle", Kind: boardgraph.KindRectangle, X: 200, Y: 200, W: 80, H: 60})
	addElement(t, c.Store, &boardgraph.Element{
		ID: "arrow1", Kind: boardgraph.KindArrow, ConnectorStyle: boardgraph.StyleSharp,
		Points: []geo.Point{{X: 50, Y: 230}, {X: 400, Y: 400}},
	})
	c.setSelection("arrow1")

	// index 0, the start point, is the only free endpoint of a 2-point
	// connector reachable as DragElbowEndpoint: per beginConnectorDrag,
	// index len-1 on an exactly-2-point connector is DragCreateCorner
	// instead.
	c.PointerDown(ctx, PointerEvent{ClientX: 50, ClientY: 230})
	require.Equal(t, ConnectorPointDrag, c.State())

	// The far end sits off the obstacle's axis at (400,400), not
	// (400,230), so the resulting elbow route doesn't collapse back to a
	// straight two-point path once simplifyOrthogonal collapses runs of
	// collinear points. Dragging onto the obstacle's near (west) edge
	// means the straight segment back to that still-fixed far end would
	// tunnel straight through it.
	c.PointerMove(ctx, PointerEvent{ClientX: 200, ClientY: 230})
	c.PointerUp(ctx, PointerEvent{ClientX: 200, ClientY: 230})

	arrow := elementByIDT(c.Store, "arrow1")
	require.NotNil(t, arrow)
	assert.Equal(t, boardgraph.StyleElbow, arrow.ConnectorStyle)
	require.True(t, len(arrow.Points) >= 3)
	require.NotNil(t, arrow.StartConnection)
	assert.Equal(t, "obstacle", arrow.StartConnection.ElementID)
}

// Dragging a curved connector's mid control point follows the cursor
// exactly, leaving both endpoints untouched.
func TestConnectorPointDragCurvedMidFollowsCursor(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	addElement(t, c.Store, &boardgraph.Element{
		ID: "conn1", Kind: boardgraph.KindArrow, ConnectorStyle: boardgraph.StyleCurved,
		Points: []geo.Point{{X: 0, Y: 0}, {X: 50, Y: 10}, {X: 100, Y: 0}},
	})
	c.setSelection("conn1")

	c.PointerDown(ctx, PointerEvent{ClientX: 50, ClientY: 10})
	require.Equal(t, ConnectorPointDrag, c.State())

	c.PointerMove(ctx, PointerEvent{ClientX: 60, ClientY: 40})
	c.PointerUp(ctx, PointerEvent{ClientX: 60, ClientY: 40})

	conn := elementByIDT(c.Store, "conn1")
	require.NotNil(t, conn)
	require.Len(t, conn.Points, 3)
	assert.InDelta(t, 0, conn.Points[0].X, 1e-6)
	assert.InDelta(t, 0, conn.Points[0].Y, 1e-6)
	assert.InDelta(t, 60, conn.Points[1].X, 1e-6)
	assert.InDelta(t, 40, conn.Points[1].Y, 1e-6)
	assert.InDelta(t, 100, conn.Points[2].X, 1e-6)
	assert.InDelta(t, 0, conn.Points[2].Y, 1e-6)
}
