package boardgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	elements := []*boardgraph.Element{
		{
			ID: "a", Kind: boardgraph.KindRectangle,
			X: 100, Y: 100, W: 80, H: 60, StrokeColor: "#000", StrokeWidth: 2,
		},
		{
			ID: "arrow1", Kind: boardgraph.KindArrow,
			Points:         []geo.Point{{X: 180, Y: 130}, {X: 300, Y: 130}},
			ConnectorStyle: boardgraph.StyleSharp,
			StartConnection: &boardgraph.Connection{ElementID: "a", Position: boardgraph.PosE},
			EndConnection:   &boardgraph.Connection{ElementID: "b", Position: boardgraph.PosW},
		},
	}

	b, err := boardgraph.SerializeElements(elements)
	require.NoError(t, err)

	got, err := boardgraph.DeserializeElements(b)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, boardgraph.KindRectangle, got[0].Kind)
	assert.Equal(t, 80.0, got[0].W)

	assert.Equal(t, []geo.Point{{X: 180, Y: 130}, {X: 300, Y: 130}}, got[1].Points)
	require.NotNil(t, got[1].StartConnection)
	assert.Equal(t, "a", got[1].StartConnection.ElementID)
	assert.Equal(t, boardgraph.PosE, got[1].StartConnection.Position)
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	e := &boardgraph.Element{
		ID: "x", Kind: boardgraph.KindLine,
		Points:          []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 10}},
		StartConnection: &boardgraph.Connection{ElementID: "s", Position: boardgraph.PosN},
	}
	c := e.Clone()
	c.Points[0].X = 999
	c.StartConnection.Position = boardgraph.PosS

	assert.Equal(t, 0.0, e.Points[0].X)
	assert.Equal(t, boardgraph.PosN, e.StartConnection.Position)
}
