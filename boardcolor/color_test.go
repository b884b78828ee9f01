package boardcolor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/boardlogic/boardcolor"
)

func TestNormalizeAcceptsNamedAndHexColorsEquivalently(t *testing.T) {
	named, err := boardcolor.Normalize("red")
	require.NoError(t, err)
	hex, err := boardcolor.Normalize("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, hex, named)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := boardcolor.Normalize("not-a-color")
	assert.Error(t, err)
}

func TestContrastColorPicksWhiteOnDark(t *testing.T) {
	assert.Equal(t, "#ffffff", boardcolor.ContrastColor("#000000"))
}

func TestContrastColorPicksBlackOnLight(t *testing.T) {
	assert.Equal(t, "#000000", boardcolor.ContrastColor("#ffffff"))
}

func TestContrastColorFallsBackToBlackOnParseError(t *testing.T) {
	assert.Equal(t, "#000000", boardcolor.ContrastColor("not-a-color"))
}

func TestBlendAtZeroAndOneReturnsEndpoints(t *testing.T) {
	fromHex, err := boardcolor.Blend("#000000", "#ffffff", 0)
	require.NoError(t, err)
	assert.Equal(t, "#000000", fromHex)

	toHex, err := boardcolor.Blend("#000000", "#ffffff", 1)
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", toHex)
}

func TestBlendClampsOutOfRangeT(t *testing.T) {
	below, err := boardcolor.Blend("#000000", "#ffffff", -5)
	require.NoError(t, err)
	above, err := boardcolor.Blend("#000000", "#ffffff", 5)
	require.NoError(t, err)
	assert.Equal(t, "#000000", below)
	assert.Equal(t, "#ffffff", above)
}
