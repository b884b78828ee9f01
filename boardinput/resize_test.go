package boardinput

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/boardlogic/lib/geo"
)

// TestRotatedResizeKeepsOppositeHandleFixed is the literal invariant
// spec.md §8 calls out: under any rotation, resizing from one handle
// must leave the opposite handle's rendered world position unchanged.
func TestRotatedResizeKeepsOppositeHandleFixed(t *testing.T) {
	b0 := geo.Box{X: 100, Y: 100, W: 200, H: 120}
	for _, rotation := range []float64{-180, -90, -45, -10, 0, 10, 45, 90, 135, 179} {
		for _, handle := range []geo.Handle{geo.HandleNW, geo.HandleNE, geo.HandleSE, geo.HandleSW, geo.HandleN, geo.HandleE, geo.HandleS, geo.HandleW} {
			center0 := b0.Center()
			oh := geo.OppositeHandle(handle)
			wantAnchor := geo.RotatePoint(geo.HandlePoint(b0, oh), center0, rotation)

			sx, sy := geo.HandleSign(handle)
			hp := geo.HandlePoint(b0, handle)
			draggedLocal := geo.Point{X: hp.X + sx*40, Y: hp.Y + sy*25}
			draggedWorld := geo.RotatePoint(draggedLocal, center0, rotation)

			newBox := rotatedResize(b0, rotation, handle, draggedWorld, 2, 2, false)
			gotAnchor := geo.RotatePoint(geo.HandlePoint(newBox, oh), newBox.Center(), rotation)

			assert.InDeltaf(t, wantAnchor.X, gotAnchor.X, 1e-6, "rotation=%v handle=%v", rotation, handle)
			assert.InDeltaf(t, wantAnchor.Y, gotAnchor.Y, 1e-6, "rotation=%v handle=%v", rotation, handle)
		}
	}
}

func TestRotatedResizeDegeneratesToAxisAlignedAtZeroRotation(t *testing.T) {
	b0 := geo.Box{X: 0, Y: 0, W: 100, H: 50}
	newBox := rotatedResize(b0, 0, geo.HandleSE, geo.Point{X: 150, Y: 80}, 2, 2, false)
	assert.InDelta(t, 0, newBox.X, 1e-9)
	assert.InDelta(t, 0, newBox.Y, 1e-9)
	assert.InDelta(t, 150, newBox.W, 1e-9)
	assert.InDelta(t, 80, newBox.H, 1e-9)
}

func TestRotatedResizeClampsToMinimumSize(t *testing.T) {
	b0 := geo.Box{X: 0, Y: 0, W: 100, H: 100}
	newBox := rotatedResize(b0, 0, geo.HandleSE, geo.Point{X: 1, Y: 1}, 10, 10, false)
	assert.Equal(t, 10.0, newBox.W)
	assert.Equal(t, 10.0, newBox.H)
}

func TestRotatedResizeShiftPreservesAspectRatio(t *testing.T) {
	b0 := geo.Box{X: 0, Y: 0, W: 100, H: 50}
	newBox := rotatedResize(b0, 0, geo.HandleSE, geo.Point{X: 300, Y: 90}, 2, 2, true)
	aspect := newBox.W / newBox.H
	assert.InDelta(t, 2.0, aspect, 1e-9)
}

func TestRescalePathMirrorsPastOppositeHandle(t *testing.T) {
	pts := []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	b0 := geo.Box{X: 0, Y: 0, W: 10, H: 0}
	scaled := rescalePath(pts, b0, geo.HandleE, geo.Point{X: -10, Y: 0}, false)
	assert.InDelta(t, -10, scaled[1].X, 1e-9)
	assert.InDelta(t, 0, scaled[0].X, 1e-9)
}

func TestClampAxisHandlesBothDirections(t *testing.T) {
	origin, length := clampAxis(50, 80, 2)
	assert.Equal(t, 50.0, origin)
	assert.Equal(t, 30.0, length)

	origin, length = clampAxis(50, 20, 2)
	assert.Equal(t, 20.0, origin)
	assert.Equal(t, 30.0, length)
}

func TestSignOf(t *testing.T) {
	assert.Equal(t, 1.0, signOf(5))
	assert.Equal(t, -1.0, signOf(-5))
	assert.True(t, math.Signbit(signOf(-0.0001)))
}
