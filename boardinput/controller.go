package boardinput

import (
	"context"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
	"oss.terrastruct.com/boardlogic/lib/throttle"
)

// snapResult is what the throttled snap search produces: a candidate
// target plus whether one was found at all, so a throttle window that
// elapsed with the cursor off any shape still returns a meaningful
// "no target" cached value rather than a stale hit.
type snapResult struct {
	found  bool
	target string
	pos    boardgraph.Position
	point  geo.Point
	outOfSight bool
}

// batchResult is what the throttled connected-arrow recompute
// produces for one drag tick.
type batchResult map[string]boardgraph.Patch

// Controller is the pointer interaction state machine (spec §4.6). It
// owns no element data beyond the current gesture's snapshot; the
// Store is the single source of truth.
type Controller struct {
	Store       boardgraph.Store
	Collab      boardgraph.Collab
	TextMetrics boardgraph.TextMetrics
	TileMetrics boardgraph.TileMetrics
	Log         slog.Logger
	IDGen       func() string

	Toolbar boardgraph.ToolbarConfig
	Tool    boardgraph.Tool

	Pan         geo.Point
	Zoom        float64
	RectOriginX float64
	RectOriginY float64

	Selection map[string]bool

	snapThrottle  *throttle.Throttle[snapResult]
	connThrottle  *throttle.Throttle[batchResult]

	state State
}

// NewController wires a Controller over its ports. Zoom defaults to 1
// and Tool to select, matching a freshly loaded board.
func NewController(store boardgraph.Store, collab boardgraph.Collab, tm boardgraph.TextMetrics, tim boardgraph.TileMetrics, idGen func() string) *Controller {
	return &Controller{
		Store:        store,
		Collab:       collab,
		TextMetrics:  tm,
		TileMetrics:  tim,
		IDGen:        idGen,
		Tool:         boardgraph.ToolSelect,
		Zoom:         1,
		Selection:    make(map[string]bool),
		snapThrottle: throttle.New[snapResult](32 * time.Millisecond),
		connThrottle: throttle.New[batchResult](16 * time.Millisecond),
	}
}

// State returns the current gesture kind, for callers that drive
// cursor/UI feedback off it (e.g. choosing a resize cursor).
func (c *Controller) State() Kind { return c.state.Kind }

// SelectedIDs returns the current local selection in no particular
// order.
func (c *Controller) SelectedIDs() []string {
	out := make([]string, 0, len(c.Selection))
	for id := range c.Selection {
		out = append(out, id)
	}
	return out
}

func (c *Controller) setSelection(ids ...string) {
	c.Selection = make(map[string]bool, len(ids))
	for _, id := range ids {
		c.Selection[id] = true
	}
	if c.Collab != nil {
		c.Collab.UpdateSelected(c.SelectedIDs())
	}
}

func (c *Controller) elements() []*boardgraph.Element {
	return c.Store.Elements()
}

func (c *Controller) snapshotGraph() *boardgraph.Graph {
	return boardgraph.NewGraph(c.elements())
}

// abortToIdle resets the state machine without touching the document,
// used on port failure (spec §7: "the core logs and aborts the
// current gesture, returning to IDLE").
func (c *Controller) abortToIdle(ctx context.Context, reason string, err error) {
	c.Log.Error(ctx, "aborting gesture", slog.F("reason", reason), slog.Error(err))
	c.state = State{}
}

// commitBatch applies patches through the Store as one transaction,
// notifying the Store of the transform boundary first (spec §5's
// ordering guarantee: element update, then follow-ups, one batch).
func (c *Controller) commitBatch(ctx context.Context, patches map[string]boardgraph.Patch) error {
	if len(patches) == 0 {
		return nil
	}
	c.Store.OnStartTransform(ctx)
	return c.Store.BatchUpdate(ctx, patches)
}
