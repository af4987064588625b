package grid_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitart/internal/grid"
	"commitart/internal/services"
)

func TestCompileWidths(t *testing.T) {
	cases := []struct {
		text  string
		width int
	}{
		{"", 0},
		{"A", 6},
		{"RAM", 18},
		{"HELLO WORLD", 66},
		{"日本", 12},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			g := grid.Compile(tc.text)
			assert.Equal(t, grid.Rows, g.Rows())
			assert.Equal(t, tc.width, g.Width())
			cells := g.Cells()
			require.Len(t, cells, 7)
			for _, row := range cells {
				assert.Len(t, row, tc.width)
			}
		})
	}
}

func TestCompileEmptyIsZeroWidth(t *testing.T) {
	g := grid.Compile("")
	cells := g.Cells()
	require.Len(t, cells, 7)
	for _, row := range cells {
		assert.NotNil(t, row)
		assert.Empty(t, row)
	}
	assert.True(t, g.IsBlank())
}

func TestCompileKeepsTrailingSpacer(t *testing.T) {
	g := grid.Compile("A")
	for r := 0; r < grid.Rows; r++ {
		assert.Equal(t, uint8(0), g.At(r, 5), "spacer row %d", r)
	}
	assert.Equal(t, []uint8{0, 1, 1, 1, 0, 0}, g.Cells()[0])
	assert.Equal(t, []uint8{1, 1, 1, 1, 1, 0}, g.Cells()[3])
}

func TestCompileDeterministicAndCaseInsensitive(t *testing.T) {
	assert.True(t, grid.Compile("Hello").Equal(grid.Compile("Hello")))
	assert.True(t, grid.Compile("a").Equal(grid.Compile("A")))
	assert.True(t, grid.Compile("hello world").Equal(grid.Compile("HELLO WORLD")))
	assert.False(t, grid.Compile("A").Equal(grid.Compile("B")))
}

func TestUnknownRendersAsSpace(t *testing.T) {
	unknown := grid.Compile("?")
	space := grid.Compile(" ")
	assert.True(t, unknown.Equal(space))
	assert.Equal(t, []uint8{0, 0, 0, 0, 0, 0}, unknown.Cells()[0])
	assert.True(t, unknown.IsBlank())
}

func TestMaxTextLengthFitsYear(t *testing.T) {
	g := grid.Compile(strings.Repeat("W", grid.MaxTextLength))
	assert.LessOrEqual(t, g.Width(), grid.YearWeeks)
}

func TestNewValidatesShape(t *testing.T) {
	_, err := grid.New([][]uint8{{1}, {0}})
	require.ErrorIs(t, err, services.ErrContractViolation)

	ragged := make([][]uint8, 7)
	for i := range ragged {
		ragged[i] = []uint8{0, 0}
	}
	ragged[4] = []uint8{0}
	_, err = grid.New(ragged)
	require.ErrorIs(t, err, services.ErrContractViolation)

	nonBinary := make([][]uint8, 7)
	for i := range nonBinary {
		nonBinary[i] = []uint8{0}
	}
	nonBinary[2][0] = 2
	_, err = grid.New(nonBinary)
	require.ErrorIs(t, err, services.ErrContractViolation)
}

func TestNewCopiesInput(t *testing.T) {
	rows := make([][]uint8, 7)
	for i := range rows {
		rows[i] = []uint8{0, 1}
	}
	g, err := grid.New(rows)
	require.NoError(t, err)
	rows[0][0] = 1
	assert.Equal(t, uint8(0), g.At(0, 0))

	cells := g.Cells()
	cells[0][1] = 0
	assert.Equal(t, uint8(1), g.At(0, 1))
}

func TestPadTo(t *testing.T) {
	g := grid.Compile("HI")
	padded := g.PadTo(grid.YearWeeks)
	assert.Equal(t, 52, padded.Width())
	assert.Equal(t, g.Active(), padded.Active())
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < g.Width(); c++ {
			assert.Equal(t, g.At(r, c), padded.At(r, c))
		}
	}
	wide := grid.Compile("HELLO WORLD")
	assert.Equal(t, 66, wide.PadTo(grid.YearWeeks).Width())
	assert.Equal(t, 12, g.Width(), "PadTo must not mutate the receiver")
}

func TestBlank(t *testing.T) {
	g := grid.Blank(grid.YearWeeks)
	assert.Equal(t, 52, g.Width())
	assert.True(t, g.IsBlank())
	assert.Equal(t, 0, grid.Blank(-3).Width())
}

func TestJSONRoundTripValidates(t *testing.T) {
	g := grid.Compile("A")
	data, err := json.Marshal(g)
	require.NoError(t, err)

	var decoded grid.Grid
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, g.Equal(decoded))

	err = json.Unmarshal([]byte(`[[0,1],[0],[0],[0],[0],[0],[0]]`), &decoded)
	require.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, services.KindValidation, services.KindOf(err))

	err = json.Unmarshal([]byte(`[[3],[0],[0],[0],[0],[0],[0]]`), &decoded)
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestRender(t *testing.T) {
	out := grid.Render(grid.Compile("I"), "#", ".")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, ".###..", lines[0])
	assert.Equal(t, "..#...", lines[3])
}
