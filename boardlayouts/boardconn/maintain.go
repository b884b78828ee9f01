// Package boardconn implements connection maintenance (spec §4.5): the
// pass that rewrites a connector's geometry whenever a shape it is
// attached to moves, resizes, or rotates, escalating sharp to elbow
// when a straight segment would tunnel a shape. Grounded on the role
// the teacher's own edge-refresh pass plays after a layout move in
// `d2layouts/d2dagrelayout/godagre/edge_routing.go` (recompute each
// edge's path from the endpoints it still references), generalized
// here from "re-run after a layout pass" to "re-run after any shape
// mutation."
package boardconn

import (
	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardroute"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardsnap"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// ConnectedArrowUpdates scans every connector in elements and, for each
// one whose start_connection or end_connection references an id in
// movedIDs, recomputes its anchored endpoint(s) and re-plans its
// geometry. It returns one Patch per connector that needs an update;
// connectors untouched by this move are omitted entirely.
func ConnectedArrowUpdates(movedIDs map[string]bool, elements []*boardgraph.Element, tm boardgraph.TextMetrics) map[string]boardgraph.Patch {
	byID := make(map[string]*boardgraph.Element, len(elements))
	for _, e := range elements {
		byID[e.ID] = e
	}

	updates := make(map[string]boardgraph.Patch)
	for _, e := range elements {
		if !e.Kind.IsConnector() {
			continue
		}
		startMoved := e.StartConnection != nil && movedIDs[e.StartConnection.ElementID]
		endMoved := e.EndConnection != nil && movedIDs[e.EndConnection.ElementID]
		if !startMoved && !endMoved {
			continue
		}

		points := append([]geo.Point(nil), e.Points...)
		if e.StartConnection != nil {
			if shape := byID[e.StartConnection.ElementID]; shape != nil {
				if p, ok := boardsnap.PointForPosition(shape, e.StartConnection.Position, tm); ok {
					points[0] = p
				}
			}
		}
		if e.EndConnection != nil {
			if shape := byID[e.EndConnection.ElementID]; shape != nil {
				if p, ok := boardsnap.PointForPosition(shape, e.EndConnection.Position, tm); ok {
					points[len(points)-1] = p
				}
			}
		}

		startElementID, targetElementID := "", ""
		if e.StartConnection != nil {
			startElementID = e.StartConnection.ElementID
		}
		if e.EndConnection != nil {
			targetElementID = e.EndConnection.ElementID
		}
		selfConnection := startElementID != "" && startElementID == targetElementID

		switch e.ConnectorStyle {
		case boardgraph.StyleElbow:
			routed := boardroute.ElbowRouteAroundObstacles(
				points[0], points[len(points)-1], elements, e.ID, startElementID, targetElementID, tm)
			updates[e.ID] = boardgraph.Patch{Points: routed, ClearElbowRoute: true}

		case boardgraph.StyleCurved:
			routed := boardroute.CurvedRouteAroundObstacles(
				points[0], points[len(points)-1], elements, e.ID, startElementID, targetElementID, tm)
			updates[e.ID] = boardgraph.Patch{Points: routed, ClearElbowRoute: true}

		case boardgraph.StyleSharp:
			if len(points) == 2 {
				updates[e.ID] = sharpStraightUpdate(points, elements, e.ID, startElementID, targetElementID, selfConnection, tm)
			} else {
				updates[e.ID] = sharpBentUpdate(points, elements, e.ID, startElementID, targetElementID, selfConnection, tm)
			}

		default:
			updates[e.ID] = boardgraph.Patch{Points: points}
		}
	}
	return updates
}

func sharpStraightUpdate(points []geo.Point, elements []*boardgraph.Element, connectorID, startElementID, targetElementID string, selfConnection bool, tm boardgraph.TextMetrics) boardgraph.Patch {
	if selfConnection {
		style := boardgraph.StyleElbow
		routed := boardroute.ElbowRouteAroundObstacles(points[0], points[1], elements, connectorID, startElementID, targetElementID, tm)
		return boardgraph.Patch{Points: routed, ConnectorStyle: &style, ClearElbowRoute: true}
	}

	exclude := excludeSet(connectorID, startElementID, targetElementID)
	if boardroute.LineOfSightClear(points[0], points[1], elements, exclude, tm) {
		style := boardgraph.StyleSharp
		return boardgraph.Patch{Points: points, ConnectorStyle: &style}
	}

	style := boardgraph.StyleElbow
	routed := boardroute.ElbowRouteAroundObstacles(points[0], points[1], elements, connectorID, startElementID, targetElementID, tm)
	return boardgraph.Patch{Points: routed, ConnectorStyle: &style, ClearElbowRoute: true}
}

func sharpBentUpdate(points []geo.Point, elements []*boardgraph.Element, connectorID, startElementID, targetElementID string, selfConnection bool, tm boardgraph.TextMetrics) boardgraph.Patch {
	if selfConnection {
		style := boardgraph.StyleElbow
		routed := boardroute.ElbowRouteAroundObstacles(points[0], points[len(points)-1], elements, connectorID, startElementID, targetElementID, tm)
		return boardgraph.Patch{Points: routed, ConnectorStyle: &style, ClearElbowRoute: true}
	}

	exclude := excludeSet(connectorID, startElementID, targetElementID)
	firstClear := boardroute.LineOfSightClear(points[0], points[1], elements, exclude, tm)
	lastClear := boardroute.LineOfSightClear(points[len(points)-2], points[len(points)-1], elements, exclude, tm)
	if firstClear && lastClear {
		return boardgraph.Patch{Points: points}
	}

	style := boardgraph.StyleElbow
	routed := boardroute.ElbowRouteAroundObstacles(points[0], points[len(points)-1], elements, connectorID, startElementID, targetElementID, tm)
	return boardgraph.Patch{Points: routed, ConnectorStyle: &style, ClearElbowRoute: true}
}

func excludeSet(connectorID, startElementID, targetElementID string) map[string]bool {
	s := map[string]bool{connectorID: true}
	if startElementID != "" {
		s[startElementID] = true
	}
	if targetElementID != "" {
		s[targetElementID] = true
	}
	return s
}
