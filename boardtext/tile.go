package boardtext

// tileSize is the minimum/default footprint for one library tile type.
type tileSize struct {
	minW, minH     float64
	defaultW, defaultH float64
}

// tileSizes is the closed set of library tile shapes this board ships
// with. A tile type absent from this table falls back to
// genericTileSize, so new tile types never panic here; they just render
// with an unremarkable default footprint until someone adds them.
var tileSizes = map[string]tileSize{
	"sticky_note": {minW: 80, minH: 80, defaultW: 160, defaultH: 160},
	"sql_table":   {minW: 160, minH: 90, defaultW: 240, defaultH: 160},
	"code_block":  {minW: 200, minH: 80, defaultW: 360, defaultH: 220},
	"image":       {minW: 40, minH: 40, defaultW: 240, defaultH: 180},
	"mind_map_node": {minW: 60, minH: 36, defaultW: 140, defaultH: 56},
}

var genericTileSize = tileSize{minW: 40, minH: 40, defaultW: 120, defaultH: 80}

func lookupTileSize(tileType string) tileSize {
	if s, ok := tileSizes[tileType]; ok {
		return s
	}
	return genericTileSize
}

// MinTileSize implements boardgraph.TileMetrics.
func (m *Metrics) MinTileSize(tileType string) (w, h float64) {
	s := lookupTileSize(tileType)
	return s.minW, s.minH
}

// DefaultTileSize implements boardgraph.TileMetrics.
func (m *Metrics) DefaultTileSize(tileType string) (w, h float64) {
	s := lookupTileSize(tileType)
	return s.defaultW, s.defaultH
}
