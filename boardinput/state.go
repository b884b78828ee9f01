// Package boardinput implements the pointer interaction state machine
// (spec §4.6): the single dispatcher every pointer event passes
// through, fanning out into drawing, dragging, resizing, rotating,
// box/lasso selection, connector-endpoint reshaping, and erasing.
// Grounded on the teacher's edge router's own role as a stateful pass
// driven by small per-phase methods
// (d2dagrelayout/godagre/edge_routing.go's edgeRouter), generalized
// here from "one pass over a static graph" to "one long-lived
// controller driven by a pointer event stream."
package boardinput

import (
	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// Kind identifies which top-level gesture a Controller is in. Every
// value but Idle corresponds to exactly one active gesture; IDLE is
// both the initial and the only terminal state (spec §4.6).
type Kind int

const (
	Idle Kind = iota
	Drawing
	Dragging
	Resizing
	Rotating
	Panning
	BoxSelecting
	LassoSelecting
	ConnectorPointDrag
	Erasing
	TextEditing
)

// ConnectorDragKind distinguishes the six ways a connector-point
// drag can behave, per spec §4.6.
type ConnectorDragKind int

const (
	DragElbowOrtho ConnectorDragKind = iota
	DragElbowEdge
	DragElbowEndpoint
	DragElbowHandle
	DragCurvedMid
	DragCreateCorner
)

// RotateGesture captures the fields spec §4.6 lists for ROTATING:
// the pivot and the pointer angle/rotation at gesture start.
type RotateGesture struct {
	ElementID        string
	Center           geo.Point
	StartPointerAngle float64
	StartRotation     float64
}

// ConnectorDragGesture captures CONNECTOR_POINT_DRAG's parameters.
type ConnectorDragGesture struct {
	Kind ConnectorDragKind

	ElementID string
	Index     int

	// elbowOrtho/elbowEdge: the shared axis being dragged ("x" or "y").
	Axis string
	// elbowEdge: the captured contiguous index range and its anchor
	// point, so points outside [RangeStart, RangeEnd] never move.
	RangeStart, RangeEnd int
	Anchor               geo.Point

	// elbowEndpoint: which end is being dragged, used to decide the
	// re-route direction and which *_connection field to write.
	IsStartEndpoint bool

	// Remembered snap outcome, updated on every pointer-move and
	// consumed at commit.
	SnapTargetID  string
	SnapPosition  boardgraph.Position
	HasSnap       bool
	OutOfSight    bool
}

// State is the Controller's current gesture, zero-valued at Idle.
type State struct {
	Kind Kind

	// Shared across several gesture kinds.
	PointerDownWorld geo.Point
	LastWorld        geo.Point
	PanStart         geo.Point

	// DRAWING
	DrawingKind       boardgraph.Kind
	DrawingElementID  string
	StartSnapTargetID string
	StartSnapPosition boardgraph.Position
	HasStartSnap      bool

	// DRAGGING
	HasDragMoved bool

	// RESIZING
	ResizeHandle      geo.Handle
	ResizeElementID   string
	ResizeMulti       bool
	ResizeOriginalBox geo.Box
	ResizeRotation    float64
	ResizeAnchorWorld geo.Point
	ResizeMinW        float64
	ResizeMinH        float64

	// ROTATING
	Rotate RotateGesture

	// BOX_SELECTING / LASSO_SELECTING
	LassoPoints []geo.Point

	// CONNECTOR_POINT_DRAG
	ConnectorDrag ConnectorDragGesture

	// TEXT_EDITING
	TextEditElementID string

	// ERASING
	ErasedIDs map[string]bool

	// original_elements: the pointer-down snapshot every delta in the
	// active gesture is computed against (spec §5), so remote mutations
	// arriving mid-gesture never corrupt it.
	Original []*boardgraph.Element
}
