package boardgraph

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/xerrors"

	"oss.terrastruct.com/boardlogic/lib/geo"
)

// MemoryStore is a minimal, non-persistent Store reference
// implementation (§6, supplemented per SPEC_FULL.md §C.6): enough to
// run the core end-to-end in cmd/boardsim and in tests, without a
// real persistence layer standing in as a fake. It is not meant to
// replace the production Store (history batching, the collaboration
// CRDT, and durability all live outside the core's scope).
type MemoryStore struct {
	mu               sync.Mutex
	elements         map[string]*Element
	order            []string
	remotelySelected map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		elements:         make(map[string]*Element),
		remotelySelected: make(map[string]bool),
	}
}

func (s *MemoryStore) Elements() []*Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		if e, ok := s.elements[id]; ok {
			out = append(out, e.Clone())
		}
	}
	return out
}

func (s *MemoryStore) RemotelySelectedIDs() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.remotelySelected))
	for k, v := range s.remotelySelected {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) Add(ctx context.Context, e *Element) error {
	if e.ID == "" {
		return xerrors.New("element must have an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.elements[e.ID]; !exists {
		s.order = append(s.order, e.ID)
	}
	s.elements[e.ID] = e.Clone()
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.elements[id]
	if !ok {
		return xerrors.Errorf("update: no such element %q", id)
	}
	applyPatch(e, patch)
	return nil
}

func (s *MemoryStore) BatchUpdate(ctx context.Context, patches map[string]Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs error
	for id, patch := range patches {
		e, ok := s.elements[id]
		if !ok {
			errs = multierr.Append(errs, xerrors.Errorf("batch update: no such element %q", id))
			continue
		}
		applyPatch(e, patch)
	}
	return errs
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elements[id]; !ok {
		return xerrors.Errorf("delete: no such element %q", id)
	}
	delete(s.elements, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) DeleteMany(ctx context.Context, ids []string) error {
	var errs error
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (s *MemoryStore) OnStartTransform(ctx context.Context) {}

// SetRemotelySelected is test/demo scaffolding for simulating a peer's
// selection, since the real collaboration transport is out of scope.
func (s *MemoryStore) SetRemotelySelected(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remotelySelected = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.remotelySelected[id] = true
	}
}

func applyPatch(e *Element, p Patch) {
	if p.Points != nil {
		e.Points = append([]geo.Point(nil), p.Points...)
	}
	if p.ConnectorStyle != nil {
		e.ConnectorStyle = *p.ConnectorStyle
	}
	if p.ClearElbowRoute {
		e.ElbowRoute = ElbowUnset
	} else if p.ElbowRoute != nil {
		e.ElbowRoute = *p.ElbowRoute
	}
	if p.ClearStartConnection {
		e.StartConnection = nil
	} else if p.StartConnection != nil {
		sc := *p.StartConnection
		e.StartConnection = &sc
	}
	if p.ClearEndConnection {
		e.EndConnection = nil
	} else if p.EndConnection != nil {
		ec := *p.EndConnection
		e.EndConnection = &ec
	}
	if p.X != nil {
		e.X = *p.X
	}
	if p.Y != nil {
		e.Y = *p.Y
	}
	if p.W != nil {
		e.W = *p.W
	}
	if p.H != nil {
		e.H = *p.H
	}
	if p.Rotation != nil {
		e.Rotation = *p.Rotation
	}
	if p.FrameID != nil {
		e.FrameID = *p.FrameID
	}
	if p.GroupID != nil {
		e.GroupID = *p.GroupID
	}
	if p.IsClosed != nil {
		e.IsClosed = *p.IsClosed
	}
	if p.FillColor != nil {
		e.FillColor = *p.FillColor
	}
	if p.Hidden != nil {
		e.Hidden = *p.Hidden
	}
	if p.Locked != nil {
		e.Locked = *p.Locked
	}
}
