package boardinput

import "oss.terrastruct.com/boardlogic/lib/geo"

// Button mirrors the pointer input contract's button codes (spec §6).
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

// PointerEvent is one raw pointer callback, in client (viewport)
// coordinates, exactly as spec §6 describes the contract.
type PointerEvent struct {
	ClientX, ClientY float64
	Button           Button
	Buttons          int
	Shift, Ctrl, Meta, Alt bool
	Detail           int // click count
}

// ToWorld converts a client-space point to world space given the
// canvas origin, current pan, and zoom: p_world = ((p_client -
// rect_origin) - pan) / zoom (spec §6).
func ToWorld(clientX, clientY float64, rectOriginX, rectOriginY float64, pan geo.Point, zoom float64) geo.Point {
	if zoom == 0 {
		zoom = 1
	}
	return geo.Point{
		X: ((clientX - rectOriginX) - pan.X) / zoom,
		Y: ((clientY - rectOriginY) - pan.Y) / zoom,
	}
}

func (c *Controller) toWorld(e PointerEvent) geo.Point {
	return ToWorld(e.ClientX, e.ClientY, c.RectOriginX, c.RectOriginY, c.Pan, c.Zoom)
}
