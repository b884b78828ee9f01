// Package boardtext is the reference implementation of the Text and
// Tile metrics ports (§6): glyph-advance-based text sizing backed by
// golang.org/x/image/font (with an optional embedded TrueType font via
// golang/freetype for more accurate advances than the built-in bitmap
// face), and fixed per-type tile minimum/default sizes. Text sources
// may carry light markdown (supplemented feature, §C.5); goldmark
// strips the markup to plain text before measuring so bold/italic/code
// spans don't inflate the measured width with literal asterisks and
// backticks.
package boardtext

import (
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"oss.terrastruct.com/boardlogic/boardgraph"
)

// Metrics implements boardgraph.TextMetrics using a loaded font face,
// falling back to the stdlib's bundled bitmap face when no TrueType
// font bytes are supplied.
type Metrics struct {
	ttf      *truetype.Font // nil when falling back to basicfont
	fallback font.Face
	md       goldmark.Markdown
}

// NewMetrics builds a Metrics. fontBytes may be nil, in which case
// glyph advances come from the stdlib's bundled basicfont.Face7x13
// (size-invariant); a real embedded TrueType font is re-faced per
// requested size for much closer advances.
func NewMetrics(fontBytes []byte) (*Metrics, error) {
	m := &Metrics{md: goldmark.New()}
	if len(fontBytes) == 0 {
		m.fallback = basicfont.Face7x13
		return m, nil
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	m.ttf = f
	return m, nil
}

// stripMarkdown renders source through goldmark's parser and
// concatenates every *ast.Text node's literal segment, discarding
// structural markup (`**`, `*`, `` ` ``, headers, list bullets).
func (m *Metrics) stripMarkdown(source string) string {
	src := []byte(source)
	doc := m.md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	if sb.Len() == 0 {
		return source
	}
	return sb.String()
}

// basicFontNominalSize is basicfont.Face7x13's fixed point size; its
// advances are scaled by requested-size/nominal-size since the face
// itself never changes with fontSize.
const basicFontNominalSize = 13.0

// faceForSize builds the font.Face to measure with at fontSize, plus
// the scale factor to apply to its raw glyph advances. A loaded
// TrueType font is re-faced per call at the exact size (scale 1);
// basicfont is a fixed bitmap face, so its advances are scaled
// relative to its nominal size instead.
func (m *Metrics) faceForSize(fontSize float64) (face font.Face, scale float64) {
	if m.ttf != nil {
		return truetype.NewFace(m.ttf, &truetype.Options{Size: fontSize, DPI: 72}), 1
	}
	return m.fallback, fontSize / basicFontNominalSize
}

// MinSingleCharWidth implements boardgraph.TextMetrics: the advance of
// the widest single rune in text (falling back to "M" when text is
// empty), plus one letter-spacing gap.
func (m *Metrics) MinSingleCharWidth(text string, fontSize float64, family string, letterSpacing float64) float64 {
	plain := m.stripMarkdown(text)
	if plain == "" {
		plain = "M"
	}
	face, scale := m.faceForSize(fontSize)
	widest := 0.0
	for _, r := range plain {
		if w := advanceOf(face, r, scale); w > widest {
			widest = w
		}
	}
	if widest == 0 {
		widest = fontSize * 0.6
	}
	return widest + letterSpacing
}

// MeasureWrappedTextHeight implements boardgraph.TextMetrics: greedy
// word-wraps plain (markdown-stripped) text to width and returns
// lineCount * lineHeight * fontSize.
func (m *Metrics) MeasureWrappedTextHeight(textContent string, width, fontSize, lineHeight float64, family string, letterSpacing float64, align boardgraph.TextAlign) float64 {
	plain := m.stripMarkdown(textContent)
	face, scale := m.faceForSize(fontSize)

	lines := 0
	for _, paragraph := range strings.Split(plain, "\n") {
		lines += wrapLineCount(face, scale, paragraph, width, letterSpacing)
	}
	if lines == 0 {
		lines = 1
	}
	return float64(lines) * fontSize * lineHeight
}

func wrapLineCount(face font.Face, scale float64, paragraph string, width, letterSpacing float64) int {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return 1
	}
	lines := 1
	lineWidth := 0.0
	spaceWidth := advanceOf(face, ' ', scale) + letterSpacing
	for i, w := range words {
		ww := wordWidth(face, scale, w, letterSpacing)
		add := ww
		if i > 0 && lineWidth > 0 {
			add += spaceWidth
		}
		if lineWidth+add > width && lineWidth > 0 {
			lines++
			lineWidth = ww
			continue
		}
		lineWidth += add
	}
	return lines
}

func wordWidth(face font.Face, scale float64, word string, letterSpacing float64) float64 {
	total := 0.0
	for _, r := range word {
		total += advanceOf(face, r, scale) + letterSpacing
	}
	return total
}

func advanceOf(face font.Face, r rune, scale float64) float64 {
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return fixedToFloat(adv) * scale
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
