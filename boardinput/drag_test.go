package boardinput

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func newDragController(idSeq ...string) *Controller {
	store := boardgraph.NewMemoryStore()
	next := 0
	idGen := func() string {
		id := "auto"
		if next < len(idSeq) {
			id = idSeq[next]
		}
		next++
		return id
	}
	c := NewController(store, fakeCollab{}, nil, nil, idGen)
	return c
}

type fakeCollab struct{}

func (fakeCollab) UpdateCursor(x, y float64)                  {}
func (fakeCollab) UpdateSelected(ids []string)                {}
func (fakeCollab) UpdateViewport(pan geo.Point, zoom float64) {}
func (fakeCollab) UpdateFollowingUser(id string)              {}
func (fakeCollab) UpdateDrawingElement(e *boardgraph.Element) {}

var _ boardgraph.Collab = fakeCollab{}

func addElement(t *testing.T, store boardgraph.Store, e *boardgraph.Element) *boardgraph.Element {
	t.Helper()
	require.NoError(t, store.Add(context.Background(), e))
	return e
}

// Dragging a selected rectangle by a pointer delta translates it by
// exactly that delta.
func TestDragTranslatesSelectedElement(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	addElement(t, c.Store, &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 50, Y: 50, W: 40, H: 30})

	c.PointerDown(ctx, PointerEvent{ClientX: 60, ClientY: 60})
	c.PointerMove(ctx, PointerEvent{ClientX: 100, ClientY: 90})
	c.PointerUp(ctx, PointerEvent{ClientX: 100, ClientY: 90})

	a := elementByIDT(c.Store, "a")
	require.NotNil(t, a)
	assert.InDelta(t, 90, a.X, 1e-6)
	assert.InDelta(t, 80, a.Y, 1e-6)
}

// A connected sharp arrow between two rectangles stays sharp and
// follows the moved rectangle's new edge point as long as the segment
// keeps a clear line of sight.
func TestDragFollowsConnectedArrowWithoutObstacle(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	addElement(t, c.Store, &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 100, Y: 100, W: 80, H: 60})
	addElement(t, c.Store, &boardgraph.Element{ID: "b", Kind: boardgraph.KindRectangle, X: 300, Y: 100, W: 80, H: 60})
	addElement(t, c.Store, &boardgraph.Element{
		ID: "arrow", Kind: boardgraph.KindArrow, ConnectorStyle: boardgraph.StyleSharp,
		Points:          []geo.Point{{X: 180, Y: 130}, {X: 300, Y: 130}},
		StartConnection: &boardgraph.Connection{ElementID: "a", Position: boardgraph.PosE},
		EndConnection:   &boardgraph.Connection{ElementID: "b", Position: boardgraph.PosW},
	})
	c.setSelection("a")

	c.PointerDown(ctx, PointerEvent{ClientX: 140, ClientY: 130})
	c.PointerMove(ctx, PointerEvent{ClientX: 140, ClientY: 290})
	c.PointerUp(ctx, PointerEvent{ClientX: 140, ClientY: 290})

	arrow := elementByIDT(c.Store, "arrow")
	require.NotNil(t, arrow)
	require.Len(t, arrow.Points, 2)
	a := elementByIDT(c.Store, "a")
	assert.InDelta(t, a.X+a.W, arrow.Points[0].X, 1e-6)
	assert.InDelta(t, a.Y+a.H/2, arrow.Points[0].Y, 1e-6)
}

func elementByIDT(store boardgraph.Store, id string) *boardgraph.Element {
	for _, e := range store.Elements() {
		if e.ID == id {
			return e
		}
	}
	return nil
}
