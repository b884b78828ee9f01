package boardinput

import (
	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// applyPatchInPlace mirrors boardgraph.MemoryStore's patch semantics
// so the state machine can preview a batch's effect before committing
// it through the Store (needed to feed connection maintenance the
// post-move shape state within a single pointer-move tick).
func applyPatchInPlace(e *boardgraph.Element, p boardgraph.Patch) {
	if p.Points != nil {
		e.Points = append([]geo.Point(nil), p.Points...)
	}
	if p.ConnectorStyle != nil {
		e.ConnectorStyle = *p.ConnectorStyle
	}
	if p.ClearElbowRoute {
		e.ElbowRoute = boardgraph.ElbowUnset
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
