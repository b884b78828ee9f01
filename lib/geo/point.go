// Package geo is the geometry kernel: rotation, bounds, and segment math
// shared by the snap engine, the route planners, and the interaction
// state machine. Every function here is pure and side-effect free.
package geo

import "math"

// Point is a location in world coordinates.
type Point struct {
	X, Y float64
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

func (p Point) Equal(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Y-o.Y) <= eps
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// RotateVector rotates vector (x, y) by deg degrees (clockwise positive,
// matching screen coordinates where Y grows downward).
func RotateVector(x, y, deg float64) (rx, ry float64) {
	rad := DegreesToRadians(deg)
	sin, cos := math.Sincos(rad)
	rx = x*cos - y*sin
	ry = x*sin + y*cos
	return rx, ry
}

// RotatePoint rotates p about center by deg degrees.
func RotatePoint(p, center Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	dx, dy := RotateVector(p.X-center.X, p.Y-center.Y, deg)
	return Point{center.X + dx, center.Y + dy}
}
