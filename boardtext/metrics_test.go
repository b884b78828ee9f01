package boardtext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardtext"
)

func mustMetrics(t *testing.T) *boardtext.Metrics {
	t.Helper()
	m, err := boardtext.NewMetrics(nil)
	require.NoError(t, err)
	return m
}

func TestMinSingleCharWidthFallsBackToMForEmptyText(t *testing.T) {
	m := mustMetrics(t)
	empty := m.MinSingleCharWidth("", 16, "", 0)
	single := m.MinSingleCharWidth("M", 16, "", 0)
	assert.Equal(t, single, empty)
}

func TestMinSingleCharWidthScalesWithFontSize(t *testing.T) {
	m := mustMetrics(t)
	small := m.MinSingleCharWidth("W", 10, "", 0)
	large := m.MinSingleCharWidth("W", 30, "", 0)
	assert.Greater(t, large, small)
}

func TestMinSingleCharWidthAddsLetterSpacing(t *testing.T) {
	m := mustMetrics(t)
	base := m.MinSingleCharWidth("A", 16, "", 0)
	spaced := m.MinSingleCharWidth("A", 16, "", 5)
	assert.InDelta(t, base+5, spaced, 1e-9)
}

func TestMinSingleCharWidthStripsMarkdownBeforeMeasuring(t *testing.T) {
	m := mustMetrics(t)
	plain := m.MinSingleCharWidth("W", 16, "", 0)
	bolded := m.MinSingleCharWidth("**W**", 16, "", 0)
	assert.InDelta(t, plain, bolded, 1e-9)
}

func TestMeasureWrappedTextHeightGrowsWithMoreText(t *testing.T) {
	m := mustMetrics(t)
	short := m.MeasureWrappedTextHeight("hi", 400, 16, 1.2, "", 0, boardgraph.TextAlign(""))
	long := m.MeasureWrappedTextHeight(
		"this is a much longer sentence that should wrap across several lines of text",
		100, 16, 1.2, "", 0, boardgraph.TextAlign(""),
	)
	assert.Greater(t, long, short)
}

func TestMeasureWrappedTextHeightIsAtLeastOneLine(t *testing.T) {
	m := mustMetrics(t)
	h := m.MeasureWrappedTextHeight("", 400, 16, 1.2, "", 0, boardgraph.TextAlign(""))
	assert.InDelta(t, 16*1.2, h, 1e-9)
}

func TestMeasureWrappedTextHeightRespectsExplicitNewlines(t *testing.T) {
	m := mustMetrics(t)
	h := m.MeasureWrappedTextHeight("one\ntwo\nthree", 400, 16, 1.2, "", 0, boardgraph.TextAlign(""))
	assert.InDelta(t, 3*16*1.2, h, 1e-9)
}
