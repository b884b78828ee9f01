package boardinput

import (
	"context"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardconn"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func minSize(e *boardgraph.Element, tm boardgraph.TextMetrics, tim boardgraph.TileMetrics) (minW, minH float64) {
	switch e.Kind {
	case boardgraph.KindText:
		if tm != nil {
			w := tm.MinSingleCharWidth(e.Text, e.FontSize, e.FontFamily, e.LetterSpacing)
			h := tm.MeasureWrappedTextHeight(e.Text, w, e.FontSize, e.LineHeight, e.FontFamily, e.LetterSpacing, e.TextAlign)
			return w, h
		}
		return 2, 2
	case boardgraph.KindTile:
		if tim != nil {
			w, h := tim.MinTileSize(e.TileType)
			return w, h
		}
		return 2, 2
	default:
		return 2, 2
	}
}

func (c *Controller) beginResize(handle geo.Handle, world geo.Point, elements []*boardgraph.Element) {
	sel := c.selectedElements(elements)
	if len(sel) == 0 {
		return
	}
	if len(sel) > 1 {
		box, _, _ := selectionBounds(sel, c.TextMetrics)
		c.state = State{
			Kind:              Resizing,
			ResizeHandle:      handle,
			ResizeMulti:       true,
			ResizeOriginalBox: box,
			Original:          cloneAll(sel),
		}
		return
	}

	target := sel[0]
	if target.Kind.IsPathLike() {
		box := boardgraph.BoundingBox(target, c.TextMetrics)
		c.state = State{
			Kind:              Resizing,
			ResizeHandle:      handle,
			ResizeElementID:   target.ID,
			ResizeOriginalBox: box,
			ResizeRotation:    target.Rotation,
			Original:          []*boardgraph.Element{target.Clone()},
		}
		return
	}

	box := boardgraph.BoundingBox(target, c.TextMetrics)
	oh := geo.OppositeHandle(handle)
	anchorLocal := geo.HandlePoint(box, oh)
	anchorWorld := geo.RotatePoint(anchorLocal, box.Center(), target.Rotation)
	minW, minH := minSize(target, c.TextMetrics, c.TileMetrics)

	c.state = State{
		Kind:              Resizing,
		ResizeHandle:      handle,
		ResizeElementID:   target.ID,
		ResizeOriginalBox: box,
		ResizeRotation:    target.Rotation,
		ResizeAnchorWorld: anchorWorld,
		ResizeMinW:        minW,
		ResizeMinH:        minH,
		Original:          []*boardgraph.Element{target.Clone()},
	}
}

// moveResize implements spec §4.6's RESIZING pointer-move for the
// single-box-like-element case: the opposite handle stays fixed in
// world space regardless of rotation (see rotatedResize), with shift
// preserving aspect ratio.
func (c *Controller) moveResize(ctx context.Context, ev PointerEvent, world geo.Point) {
	if c.state.ResizeMulti {
		c.moveResizeMulti(ctx, world)
		return
	}

	target := c.state.Original[0]
	var newBox geo.Box
	switch {
	case target.Kind.IsPathLike():
		newBox = c.state.ResizeOriginalBox // unused path; points rescaled below
	default:
		newBox = rotatedResize(
			c.state.ResizeOriginalBox, c.state.ResizeRotation, c.state.ResizeHandle,
			world, c.state.ResizeMinW, c.state.ResizeMinH, ev.Shift,
		)
	}

	var patch boardgraph.Patch
	if target.Kind.IsPathLike() {
		scaled := rescalePath(target.Points, c.state.ResizeOriginalBox, c.state.ResizeHandle, world, ev.Shift)
		patch = boardgraph.Patch{Points: scaled}
	} else {
		x, y, w, h := newBox.X, newBox.Y, newBox.W, newBox.H
		patch = boardgraph.Patch{X: &x, Y: &y, W: &w, H: &h}
	}

	patches := map[string]boardgraph.Patch{target.ID: patch}
	elements := c.applyPreview(c.elements(), patches)
	follow := boardconn.ConnectedArrowUpdates(map[string]bool{target.ID: true}, elements, c.TextMetrics)
	for id, p := range follow {
		patches[id] = p
	}
	if err := c.commitBatch(ctx, patches); err != nil {
		c.abortToIdle(ctx, "resize:move", err)
	}
}

// rotatedResize computes the new unrotated stored box for a single
// element resize, keeping the handle opposite the dragged one fixed
// in world space under rotation (spec §4.6 and §8's invariant). It
// reduces to plain axis-aligned resize when rotation is zero.
func rotatedResize(b0 geo.Box, rotation float64, handle geo.Handle, world geo.Point, minW, minH float64, shift bool) geo.Box {
	center0 := b0.Center()
	oh := geo.OppositeHandle(handle)
	anchorLocal := geo.HandlePoint(b0, oh)
	anchorWorld := geo.RotatePoint(anchorLocal, center0, rotation)
	// Project the world pointer into the shape's own unrotated frame by
	// inverting the rotation about the pre-move center, so the rest of
	// this function can work in plain axis-aligned box math.
	localPointer := geo.RotatePoint(world, center0, -rotation)

	sx, sy := geo.HandleSign(handle)
	newX, newW := b0.X, b0.W
	if sx != 0 {
		newX, newW = clampAxis(anchorLocal.X, localPointer.X, minW)
	}
	newY, newH := b0.Y, b0.H
	if sy != 0 {
		newY, newH = clampAxis(anchorLocal.Y, localPointer.Y, minH)
	}

	if shift && sx != 0 && sy != 0 && b0.H != 0 {
		aspect := b0.W / b0.H
		if newW/aspect > newH {
			newH = newW / aspect
		} else {
			newW = newH * aspect
		}
		newX, _ = clampAxis(anchorLocal.X, anchorLocal.X+signOf(localPointer.X-anchorLocal.X)*newW, minW)
		newY, _ = clampAxis(anchorLocal.Y, anchorLocal.Y+signOf(localPointer.Y-anchorLocal.Y)*newH, minH)
	}

	newLocal := geo.Box{X: newX, Y: newY, W: newW, H: newH}
	newCenterLocal := newLocal.Center()
	halfVec := geo.Point{X: newCenterLocal.X - anchorLocal.X, Y: newCenterLocal.Y - anchorLocal.Y}
	rvx, rvy := geo.RotateVector(halfVec.X, halfVec.Y, rotation)
	newWorldCenter := geo.Point{X: anchorWorld.X + rvx, Y: anchorWorld.Y + rvy}

	return geo.Box{
		X: newWorldCenter.X - newW/2,
		Y: newWorldCenter.Y - newH/2,
		W: newW,
		H: newH,
	}
}

func clampAxis(anchor, pointer, min float64) (origin, length float64) {
	lo, hi := anchor, pointer
	if lo > hi {
		lo, hi = hi, lo
	}
	length = hi - lo
	if length < min {
		length = min
	}
	if pointer >= anchor {
		origin = anchor
	} else {
		origin = anchor - length
	}
	return origin, length
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// rescalePath rescales a pen/line/arrow/laser element's points within
// its original bounds' frame; negative scale factors mirror the path
// intentionally when the handle is dragged past the opposite side.
func rescalePath(pts []geo.Point, b0 geo.Box, handle geo.Handle, world geo.Point, shift bool) []geo.Point {
	oh := geo.OppositeHandle(handle)
	anchor := geo.HandlePoint(b0, oh)
	sx, sy := geo.HandleSign(handle)

	scaleX, scaleY := 1.0, 1.0
	if sx != 0 && b0.W != 0 {
		scaleX = (world.X - anchor.X) / (geo.HandlePoint(b0, handle).X - anchor.X)
	}
	if sy != 0 && b0.H != 0 {
		scaleY = (world.Y - anchor.Y) / (geo.HandlePoint(b0, handle).Y - anchor.Y)
	}
	if shift {
		if absF(scaleX) > absF(scaleY) {
			scaleY = scaleX
		} else {
			scaleX = scaleY
		}
	}

	out := make([]geo.Point, len(pts))
	for i, p := range pts {
		out[i] = geo.Point{
			X: anchor.X + (p.X-anchor.X)*scaleX,
			Y: anchor.Y + (p.Y-anchor.Y)*scaleY,
		}
	}
	return out
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// moveResizeMulti rescales every originally selected element around
// the original selection bounds; box-like results are axis-normalized
// (spec §4.6's multi-selection resize rule). Rotation-aware anchoring
// is intentionally not attempted across a mixed-rotation selection.
func (c *Controller) moveResizeMulti(ctx context.Context, world geo.Point) {
	b0 := c.state.ResizeOriginalBox
	oh := geo.OppositeHandle(c.state.ResizeHandle)
	anchor := geo.HandlePoint(b0, oh)
	sx, sy := geo.HandleSign(c.state.ResizeHandle)

	scaleX, scaleY := 1.0, 1.0
	handlePoint := geo.HandlePoint(b0, c.state.ResizeHandle)
	if sx != 0 && b0.W != 0 {
		scaleX = (world.X - anchor.X) / (handlePoint.X - anchor.X)
	}
	if sy != 0 && b0.H != 0 {
		scaleY = (world.Y - anchor.Y) / (handlePoint.Y - anchor.Y)
	}

	patches := make(map[string]boardgraph.Patch, len(c.state.Original))
	movedIDs := make(map[string]bool, len(c.state.Original))
	for _, orig := range c.state.Original {
		movedIDs[orig.ID] = true
		patches[orig.ID] = rescaleAroundAnchor(orig, anchor, scaleX, scaleY)
	}
	elements := c.applyPreview(c.elements(), patches)
	follow := boardconn.ConnectedArrowUpdates(movedIDs, elements, c.TextMetrics)
	for id, p := range follow {
		if movedIDs[id] {
			continue
		}
		patches[id] = p
	}
	if err := c.commitBatch(ctx, patches); err != nil {
		c.abortToIdle(ctx, "resize:move-multi", err)
	}
}

func rescaleAroundAnchor(e *boardgraph.Element, anchor geo.Point, scaleX, scaleY float64) boardgraph.Patch {
	if e.Kind.IsPathLike() {
		pts := make([]geo.Point, len(e.Points))
		for i, p := range e.Points {
			pts[i] = geo.Point{X: anchor.X + (p.X-anchor.X)*scaleX, Y: anchor.Y + (p.Y-anchor.Y)*scaleY}
		}
		return boardgraph.Patch{Points: pts}
	}
	nb := geo.SignedBox{
		X: anchor.X + (e.X-anchor.X)*scaleX,
		Y: anchor.Y + (e.Y-anchor.Y)*scaleY,
		W: e.W * scaleX,
		H: e.H * scaleY,
	}.Normalize()
	x, y, w, h := nb.X, nb.Y, nb.W, nb.H
	return boardgraph.Patch{X: &x, Y: &y, W: &w, H: &h}
}
