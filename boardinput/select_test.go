package boardinput

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/boardlogic/boardgraph"
)

// Clicking an unselected element under the select tool selects only
// that element, replacing any prior selection.
func TestClickSelectsSingleElement(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	addElement(t, c.Store, &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 0, Y: 0, W: 50, H: 50})
	addElement(t, c.Store, &boardgraph.Element{ID: "b", Kind: boardgraph.KindRectangle, X: 200, Y: 200, W: 50, H: 50})
	c.setSelection("a")

	c.PointerDown(ctx, PointerEvent{ClientX: 220, ClientY: 220})
	c.PointerUp(ctx, PointerEvent{ClientX: 220, ClientY: 220})

	assert.False(t, c.Selection["a"])
	assert.True(t, c.Selection["b"])
}

// Dragging a box around two elements selects both.
func TestBoxSelectCapturesContainedElements(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	addElement(t, c.Store, &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 0, Y: 0, W: 50, H: 50})
	addElement(t, c.Store, &boardgraph.Element{ID: "b", Kind: boardgraph.KindRectangle, X: 100, Y: 100, W: 50, H: 50})

	c.PointerDown(ctx, PointerEvent{ClientX: -10, ClientY: -10})
	c.PointerMove(ctx, PointerEvent{ClientX: 200, ClientY: 200})
	c.PointerUp(ctx, PointerEvent{ClientX: 200, ClientY: 200})

	assert.True(t, c.Selection["a"])
	assert.True(t, c.Selection["b"])
}

// A box drag that never exceeds the 5-unit jitter threshold clears the
// selection on commit instead of keeping whatever was hit.
func TestBoxSelectTinyDragClearsSelection(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	addElement(t, c.Store, &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 0, Y: 0, W: 50, H: 50})
	c.setSelection("a")

	c.PointerDown(ctx, PointerEvent{ClientX: 500, ClientY: 500})
	c.PointerMove(ctx, PointerEvent{ClientX: 501, ClientY: 501})
	c.PointerUp(ctx, PointerEvent{ClientX: 501, ClientY: 501})

	assert.Empty(t, c.Selection)
}
