package boardgraph

import "time"

// Graph is an in-memory index over a Store snapshot: a by-id map plus
// the connectors-by-shape index spec.md §9 names as an optional
// incremental (we build it eagerly since every gesture needs it).
type Graph struct {
	byID            map[string]*Element
	order           []string // insertion order, stable for deterministic iteration
	connectorsByShape map[string][]*Element
}

// NewGraph builds a Graph from a Store snapshot.
func NewGraph(elements []*Element) *Graph {
	g := &Graph{
		byID:              make(map[string]*Element, len(elements)),
		connectorsByShape: make(map[string][]*Element),
	}
	for _, e := range elements {
		g.index(e)
	}
	return g
}

func (g *Graph) index(e *Element) {
	if _, exists := g.byID[e.ID]; !exists {
		g.order = append(g.order, e.ID)
	}
	g.byID[e.ID] = e
	if e.Kind.IsConnector() {
		if e.StartConnection != nil {
			g.connectorsByShape[e.StartConnection.ElementID] = appendUnique(g.connectorsByShape[e.StartConnection.ElementID], e)
		}
		if e.EndConnection != nil {
			g.connectorsByShape[e.EndConnection.ElementID] = appendUnique(g.connectorsByShape[e.EndConnection.ElementID], e)
		}
	}
}

func appendUnique(list []*Element, e *Element) []*Element {
	for _, x := range list {
		if x.ID == e.ID {
			return list
		}
	}
	return append(list, e)
}

// Elements returns all elements in stable insertion order, matching
// the determinism rule in §4.3 ("ties are broken by first occurrence,
// element order").
func (g *Graph) Elements() []*Element {
	out := make([]*Element, 0, len(g.order))
	for _, id := range g.order {
		if e, ok := g.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (g *Graph) Get(id string) (*Element, bool) {
	e, ok := g.byID[id]
	return e, ok
}

// Upsert adds or replaces an element and refreshes its index entries.
func (g *Graph) Upsert(e *Element) {
	g.removeFromShapeIndex(e.ID)
	g.index(e)
}

// Remove deletes an element and its index entries.
func (g *Graph) Remove(id string) {
	delete(g.byID, id)
	g.removeFromShapeIndex(id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

func (g *Graph) removeFromShapeIndex(connectorID string) {
	for shapeID, list := range g.connectorsByShape {
		filtered := list[:0]
		for _, e := range list {
			if e.ID != connectorID {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			delete(g.connectorsByShape, shapeID)
		} else {
			g.connectorsByShape[shapeID] = filtered
		}
	}
}

// ConnectorsReferencing returns every connector whose start or end
// connection points at shapeID, via the incremental index rather than
// a full scan.
func (g *Graph) ConnectorsReferencing(shapeID string) []*Element {
	return g.connectorsByShape[shapeID]
}

// GroupMembers returns every non-hidden, non-locked, non-remotely-
// selected sibling sharing e's GroupID (including e itself). If e has
// no GroupID, only e is returned.
func (g *Graph) GroupMembers(e *Element) []*Element {
	if e.GroupID == "" {
		return []*Element{e}
	}
	var out []*Element
	for _, o := range g.Elements() {
		if o.GroupID == e.GroupID && !o.Hidden && !o.Locked && !o.RemotelySelected {
			out = append(out, o)
		}
	}
	return out
}

// FrameDescendants returns every non-laser, non-hidden, non-locked,
// non-remotely-selected element contained in the given frame.
func (g *Graph) FrameDescendants(frameID string) []*Element {
	var out []*Element
	for _, o := range g.Elements() {
		if o.FrameID == frameID && o.Kind != KindLaser && !o.Hidden && !o.Locked && !o.RemotelySelected {
			out = append(out, o)
		}
	}
	return out
}

// IsLaserExpired reports whether a laser element's stroke has faded by
// wall-clock ttl since its creation timestamp. Lasers are ephemeral
// and never selectable (spec §3); this predicate is the one place the
// TTL constant lives so the (external) renderer and the eraser/hit-
// test pass agree on it.
func IsLaserExpired(e *Element, now time.Time, ttl time.Duration) bool {
	if e.Kind != KindLaser {
		return false
	}
	created := time.UnixMilli(e.Timestamp)
	return now.Sub(created) >= ttl
}

// DefaultLaserTTL is the fade duration used when no override is given.
const DefaultLaserTTL = 2 * time.Second
