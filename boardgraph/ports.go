package boardgraph

import (
	"context"

	"oss.terrastruct.com/boardlogic/lib/geo"
)

// Store is the port the core mutates the document through (§6). The
// Store owns the authoritative element list; the core never holds a
// second source of truth beyond its per-gesture snapshot
// (original_elements, captured in the gesture state at pointer-down).
type Store interface {
	Elements() []*Element
	RemotelySelectedIDs() map[string]bool

	Add(ctx context.Context, e *Element) error
	Update(ctx context.Context, id string, patch Patch) error
	BatchUpdate(ctx context.Context, patches map[string]Patch) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error

	OnStartTransform(ctx context.Context)
}

// Patch is a partial update to an element. Only non-nil fields are
// applied; a field set to its zero value still applies if the pointer
// is non-nil. ElbowRoute/StartConnection/EndConnection use explicit
// "clear" flags rather than relying on nil meaning "leave unchanged"
// vs. "clear". Points has no clear flag: a nil Points leaves the
// element's points unchanged.
type Patch struct {
	Points []geo.Point

	ConnectorStyle *ConnectorStyle
	ElbowRoute     *ElbowRoute
	ClearElbowRoute bool

	StartConnection     *Connection
	ClearStartConnection bool
	EndConnection        *Connection
	ClearEndConnection   bool

	X, Y, W, H *float64
	Rotation   *float64
	FrameID    *string
	GroupID    *string

	IsClosed  *bool
	FillColor *string

	Hidden *bool
	Locked *bool
}

// Collab is the collaboration transport port (§6). The core never
// blocks on it: every method is a fire-and-forget notification, rate
// limited by the caller (at most once per animation frame for cursor
// updates per §5).
type Collab interface {
	UpdateCursor(x, y float64)
	UpdateSelected(ids []string)
	UpdateViewport(pan geo.Point, zoom float64)
	UpdateFollowingUser(id string) // "" clears following
	UpdateDrawingElement(e *Element) // nil clears the live-draw preview
}

// TileMetrics is the Tile metrics port (§6).
type TileMetrics interface {
	MinTileSize(tileType string) (w, h float64)
	DefaultTileSize(tileType string) (w, h float64)
}

// Tool is the toolbar tool surface (§6).
type Tool string

const (
	ToolHand        Tool = "hand"
	ToolSelect      Tool = "select"
	ToolLasso       Tool = "lasso"
	ToolPen         Tool = "pen"
	ToolHighlighter Tool = "highlighter"
	ToolLine        Tool = "line"
	ToolArrow       Tool = "arrow"
	ToolRectangle   Tool = "rectangle"
	ToolDiamond     Tool = "diamond"
	ToolEllipse     Tool = "ellipse"
	ToolFrame       Tool = "frame"
	ToolEraser      Tool = "eraser"
	ToolText        Tool = "text"
	ToolLaser       Tool = "laser"
	ToolTile        Tool = "tile"
)

// StrokeStyle mirrors the toolbar's stroke_style options.
type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

// LineCap mirrors the toolbar's line_cap options.
type LineCap string

const (
	CapButt  LineCap = "butt"
	CapRound LineCap = "round"
)

// FillPattern mirrors the toolbar's fill_pattern options.
type FillPattern string

const (
	FillNone  FillPattern = "none"
	FillSolid FillPattern = "solid"
)

// ToolbarConfig is the current toolbar configuration the state machine
// consults when creating or previewing elements.
type ToolbarConfig struct {
	StrokeColor    string
	StrokeWidth    float64
	FillColor      string
	Opacity        float64
	StrokeStyle    StrokeStyle
	LineCap        LineCap
	ConnectorStyle ConnectorStyle
	ArrowStart     string
	ArrowEnd       string
	CornerRadius   float64

	FontSize      float64
	FontFamily    string
	TextAlign     TextAlign

	FillPattern      FillPattern
	FrameStyle       string
	SelectedTileType string
	SelectedNoteStyle string
	HandDrawnMode    bool

	IsToolLocked bool
	IsReadOnly   bool
}
