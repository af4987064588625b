package grid_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitart/internal/grid"
	"commitart/internal/services"
)

func TestParseTextArt(t *testing.T) {
	input := `; heart
.#.#.
#####
#####
.###.
..#..
.....
.....
`
	g, err := grid.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, g.Width())
	assert.Equal(t, uint8(1), g.At(0, 1))
	assert.Equal(t, uint8(0), g.At(0, 0))
	assert.Equal(t, 16, g.Active())
}

func TestParseTextArtSpaceRow(t *testing.T) {
	input := "#....\n     \n.....\n.....\n.....\n.....\n....#\n"
	g, err := grid.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 2, g.Active())
	assert.Equal(t, uint8(1), g.At(6, 4))
}

func TestParseJSON(t *testing.T) {
	input := `[[1,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,1]]`
	g, err := grid.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 2, g.Active())
	assert.Equal(t, uint8(1), g.At(6, 1))
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty":      "   \n",
		"too few":    "#\n#\n",
		"ragged":     "##\n##\n##\n#\n##\n##\n##\n",
		"bad symbol": "#x\n##\n##\n##\n##\n##\n##\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := grid.Parse(strings.NewReader(input))
			require.Error(t, err)
			assert.Equal(t, services.KindValidation, services.KindOf(err))
		})
	}
}
