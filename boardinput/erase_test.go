package boardinput

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/boardlogic/boardgraph"
)

// An eraser stroke passing through a rectangle's bounds deletes it on
// pointer-up; one that never comes near any element deletes nothing.
func TestEraserDeletesTouchedElement(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	c.Tool = boardgraph.ToolEraser
	addElement(t, c.Store, &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 0, Y: 0, W: 50, H: 50, StrokeWidth: 1})
	addElement(t, c.Store, &boardgraph.Element{ID: "b", Kind: boardgraph.KindRectangle, X: 500, Y: 500, W: 50, H: 50, StrokeWidth: 1})

	c.PointerDown(ctx, PointerEvent{ClientX: 25, ClientY: 25})
	c.PointerMove(ctx, PointerEvent{ClientX: 30, ClientY: 30})
	c.PointerUp(ctx, PointerEvent{ClientX: 30, ClientY: 30})

	assert.Nil(t, elementByIDT(c.Store, "a"))
	assert.NotNil(t, elementByIDT(c.Store, "b"))
}

// Erasing accumulates touched elements across the whole gesture: an
// eraser stroke that visits two separate elements before pointer-up
// deletes both.
func TestEraserAccumulatesAcrossGesture(t *testing.T) {
	ctx := context.Background()
	c := newDragController()
	c.Tool = boardgraph.ToolEraser
	addElement(t, c.Store, &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 0, Y: 0, W: 50, H: 50, StrokeWidth: 1})
	addElement(t, c.Store, &boardgraph.Element{ID: "b", Kind: boardgraph.KindRectangle, X: 200, Y: 0, W: 50, H: 50, StrokeWidth: 1})

	c.PointerDown(ctx, PointerEvent{ClientX: 25, ClientY: 25})
	c.PointerMove(ctx, PointerEvent{ClientX: 225, ClientY: 25})
	c.PointerUp(ctx, PointerEvent{ClientX: 225, ClientY: 25})

	assert.Nil(t, elementByIDT(c.Store, "a"))
	assert.Nil(t, elementByIDT(c.Store, "b"))
}
