// Package boardgraph holds the shared element model: the tagged
// Element variant, its bounding-box rules, connections between
// connectors and shapes, and the Store/Collaboration/metrics ports the
// interaction and routing packages consume. It plays the role the
// teacher's d2graph package plays for a D2 diagram: the one package
// everything else imports.
package boardgraph

import "oss.terrastruct.com/boardlogic/lib/geo"

// Kind is the closed set of element variants. Every operation that
// branches on Kind should have an explicit case for each value below;
// resist unifying path-like and box-like kinds behind one code path,
// since they diverge in bounds, resize, and hit-testing.
type Kind string

const (
	KindPen       Kind = "pen"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindRectangle Kind = "rectangle"
	KindDiamond   Kind = "diamond"
	KindEllipse   Kind = "ellipse"
	KindText      Kind = "text"
	KindFrame     Kind = "frame"
	KindWebEmbed  Kind = "web-embed"
	KindLaser     Kind = "laser"
	KindTile      Kind = "tile"
)

func (k Kind) IsBoxLike() bool {
	switch k {
	case KindRectangle, KindDiamond, KindEllipse, KindText, KindFrame, KindWebEmbed, KindTile:
		return true
	}
	return false
}

func (k Kind) IsPathLike() bool {
	switch k {
	case KindPen, KindLine, KindArrow, KindLaser:
		return true
	}
	return false
}

func (k Kind) IsConnector() bool {
	return k == KindLine || k == KindArrow
}

// ConnectorStyle is the rendering/routing mode of a line or arrow.
type ConnectorStyle string

const (
	StyleSharp  ConnectorStyle = "sharp"
	StyleCurved ConnectorStyle = "curved"
	StyleElbow  ConnectorStyle = "elbow"
)

// ElbowRoute records the elbow planner's preferred axis for the first
// segment, so re-routes stay stable across small shape moves.
type ElbowRoute string

const (
	ElbowVertical   ElbowRoute = "vertical"
	ElbowHorizontal ElbowRoute = "horizontal"
	ElbowUnset      ElbowRoute = ""
)

// Position is one of the eight shape-relative snap positions.
type Position string

const (
	PosNW Position = "nw"
	PosN  Position = "n"
	PosNE Position = "ne"
	PosE  Position = "e"
	PosSE Position = "se"
	PosS  Position = "s"
	PosSW Position = "sw"
	PosW  Position = "w"
)

// Connection anchors a connector endpoint to a shape's snap point.
type Connection struct {
	ElementID string
	Position  Position
}

// TextAlign mirrors the toolbar's text_align options.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Element is the tagged variant over every shape kind the core
// understands. Box-like kinds use X/Y/W/H; path-like kinds use
// Points. Connector-only fields are zero/nil on non-connector kinds.
type Element struct {
	ID     string
	Kind   Kind
	Z      int
	Rotation float64 // degrees, about current bounds center

	StrokeColor string
	StrokeWidth float64
	Opacity     float64
	Hidden      bool
	Locked      bool

	FrameID string // "" if not contained in a frame
	GroupID string // "" if not grouped

	// Box-like geometry.
	X, Y, W, H float64

	// Path-like geometry.
	Points []geo.Point

	// Text-specific.
	FontSize      float64
	FontFamily    string
	LineHeight    float64
	LetterSpacing float64
	TextAlign     TextAlign
	IsTextBox     bool
	Text          string

	// Connector-specific.
	ConnectorStyle   ConnectorStyle
	ElbowRoute       ElbowRoute
	StartConnection  *Connection
	EndConnection    *Connection

	// Pen/laser-specific.
	IsClosed    bool
	FillColor   string
	FillPattern string // "none" | "solid"

	// Laser-specific.
	Timestamp int64

	// Tile-specific.
	TileType string

	// Selection bookkeeping, not persisted geometry but tracked
	// alongside the element so the state machine and eraser can
	// consult a single snapshot.
	RemotelySelected bool
}

// Clone returns a deep-enough copy for gesture snapshotting: Points and
// the connection pointers are copied so mutating the clone never
// aliases the original.
func (e *Element) Clone() *Element {
	c := *e
	if e.Points != nil {
		c.Points = append([]geo.Point(nil), e.Points...)
	}
	if e.StartConnection != nil {
		sc := *e.StartConnection
		c.StartConnection = &sc
	}
	if e.EndConnection != nil {
		ec := *e.EndConnection
		c.EndConnection = &ec
	}
	return &c
}
