package boardgraph

import "oss.terrastruct.com/boardlogic/lib/geo"

// TextMetrics is the subset of the Text metrics port (§6) bounds
// computation needs for a text element with no explicit size.
type TextMetrics interface {
	MinSingleCharWidth(text string, fontSize float64, family string, letterSpacing float64) float64
	MeasureWrappedTextHeight(text string, width, fontSize, lineHeight float64, family string, letterSpacing float64, align TextAlign) float64
}

// BoundingBox returns the axis-aligned, unrotated stored bounds of e.
// tm is only consulted for a text element created without explicit
// W/H; when tm is nil, such an element gets a rough single-line
// estimate instead of measured bounds.
func BoundingBox(e *Element, tm TextMetrics) geo.Box {
	switch {
	case e.Kind.IsPathLike():
		return geo.BoundsFromPoints(e.Points, 2*e.StrokeWidth)
	case e.Kind == KindText && e.W == 0 && e.H == 0:
		return estimateTextBounds(e, tm)
	default:
		return geo.Box{X: e.X, Y: e.Y, W: e.W, H: e.H}
	}
}

func estimateTextBounds(e *Element, tm TextMetrics) geo.Box {
	if tm == nil {
		// No metrics port available: fall back to a single-line
		// estimate using the font size as an average glyph width, so
		// callers without a metrics port (e.g. geometry unit tests)
		// still get a non-degenerate box.
		w := float64(len([]rune(e.Text))) * e.FontSize * 0.6
		if w == 0 {
			w = e.FontSize
		}
		h := e.LineHeight
		if h == 0 {
			h = e.FontSize * 1.25
		}
		return geo.Box{X: e.X, Y: e.Y, W: w, H: h}
	}
	minW := tm.MinSingleCharWidth(e.Text, e.FontSize, e.FontFamily, e.LetterSpacing)
	h := tm.MeasureWrappedTextHeight(e.Text, minW, e.FontSize, e.LineHeight, e.FontFamily, e.LetterSpacing, e.TextAlign)
	return geo.Box{X: e.X, Y: e.Y, W: minW, H: h}
}

// WorldBounds returns the rotated world-space envelope of e: stored
// bounds rotated about their own center. Used wherever a caller needs
// a hit box for a rotated element rather than the stored axis-aligned
// rectangle (eraser, box-select containment).
func WorldBounds(e *Element, tm TextMetrics) geo.Box {
	b := BoundingBox(e, tm)
	return b.RotatedEnvelope(e.Rotation)
}
