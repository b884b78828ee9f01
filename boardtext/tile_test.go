package boardtext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinTileSizeKnownType(t *testing.T) {
	m := mustMetrics(t)
	w, h := m.MinTileSize("sticky_note")
	assert.Equal(t, 80.0, w)
	assert.Equal(t, 80.0, h)
}

func TestDefaultTileSizeKnownType(t *testing.T) {
	m := mustMetrics(t)
	w, h := m.DefaultTileSize("sql_table")
	assert.Equal(t, 240.0, w)
	assert.Equal(t, 160.0, h)
}

func TestTileSizeFallsBackToGenericForUnknownType(t *testing.T) {
	m := mustMetrics(t)
	w, h := m.MinTileSize("something_nobody_registered")
	gw, gh := m.MinTileSize("")
	assert.Equal(t, gw, w)
	assert.Equal(t, gh, h)

	dw, dh := m.DefaultTileSize("something_nobody_registered")
	assert.GreaterOrEqual(t, dw, w)
	assert.GreaterOrEqual(t, dh, h)
}

func TestDefaultTileSizeNeverSmallerThanMin(t *testing.T) {
	m := mustMetrics(t)
	for _, tt := range []string{"sticky_note", "sql_table", "code_block", "image", "mind_map_node", "unknown"} {
		minW, minH := m.MinTileSize(tt)
		defW, defH := m.DefaultTileSize(tt)
		assert.GreaterOrEqualf(t, defW, minW, "tile type %s", tt)
		assert.GreaterOrEqualf(t, defH, minH, "tile type %s", tt)
	}
}
