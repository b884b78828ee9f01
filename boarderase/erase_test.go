package boarderase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boarderase"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func TestHitsBoxLike(t *testing.T) {
	t.Parallel()
	e := &boardgraph.Element{Kind: boardgraph.KindRectangle, X: 0, Y: 0, W: 100, H: 50, StrokeWidth: 2}
	assert.True(t, boarderase.Hits(geo.Point{X: 0, Y: 25}, e, nil), "on the left edge, distance 0")
	assert.False(t, boarderase.Hits(geo.Point{X: -20, Y: 25}, e, nil))
}

func TestHitsPenSinglePoint(t *testing.T) {
	t.Parallel()
	e := &boardgraph.Element{Kind: boardgraph.KindPen, Points: []geo.Point{{X: 10, Y: 10}}, StrokeWidth: 1}
	assert.True(t, boarderase.Hits(geo.Point{X: 11, Y: 10}, e, nil))
	assert.False(t, boarderase.Hits(geo.Point{X: 50, Y: 50}, e, nil))
}

func TestHitsElbowConnectorOnlyNearSegments(t *testing.T) {
	t.Parallel()
	e := &boardgraph.Element{
		Kind: boardgraph.KindArrow, ConnectorStyle: boardgraph.StyleElbow, StrokeWidth: 2,
		Points: []geo.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}},
	}
	assert.True(t, boarderase.Hits(geo.Point{X: 50, Y: 0}, e, nil))
	assert.True(t, boarderase.Hits(geo.Point{X: 100, Y: 50}, e, nil))
	assert.False(t, boarderase.Hits(geo.Point{X: 50, Y: 50}, e, nil), "the diagonal midpoint of the bounding box is not on either segment")
}

func TestMarkedForEraseSkipsAlreadyMarkedAndHidden(t *testing.T) {
	t.Parallel()
	a := &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 0, Y: 0, W: 20, H: 20, StrokeWidth: 1}
	b := &boardgraph.Element{ID: "b", Kind: boardgraph.KindRectangle, X: 0, Y: 0, W: 20, H: 20, StrokeWidth: 1, Hidden: true}
	already := map[string]bool{"a": true}
	ids := boarderase.MarkedForErase(geo.Point{X: 10, Y: 10}, geo.Point{X: 10, Y: 10}, []*boardgraph.Element{a, b}, nil, already)
	assert.Empty(t, ids)
}

func TestMarkedForEraseHitsAlongTravel(t *testing.T) {
	t.Parallel()
	a := &boardgraph.Element{ID: "a", Kind: boardgraph.KindRectangle, X: 40, Y: 0, W: 20, H: 20, StrokeWidth: 1}
	ids := boarderase.MarkedForErase(geo.Point{X: 0, Y: 10}, geo.Point{X: 100, Y: 10}, []*boardgraph.Element{a}, nil, nil)
	assert.Contains(t, ids, "a")
}
