package boardinput

import (
	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardlayouts/boardroute"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func elbowPreview(start, end geo.Point, elements []*boardgraph.Element, excludeID, startElementID, targetElementID string, tm boardgraph.TextMetrics) []geo.Point {
	return boardroute.ElbowRouteAroundObstacles(start, end, elements, excludeID, startElementID, targetElementID, tm)
}

func curvedPreview(start, end geo.Point, elements []*boardgraph.Element, excludeID, startElementID, targetElementID string, tm boardgraph.TextMetrics) []geo.Point {
	return boardroute.CurvedRouteAroundObstacles(start, end, elements, excludeID, startElementID, targetElementID, tm)
}
