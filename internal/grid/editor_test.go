package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitart/internal/grid"
	"commitart/internal/services"
)

func TestEditorToggleUndoRedo(t *testing.T) {
	ed := grid.NewEditor(grid.Blank(grid.YearWeeks))
	require.NoError(t, ed.Toggle(2, 10))
	require.NoError(t, ed.Toggle(3, 11))
	assert.Equal(t, 2, ed.Grid().Active())

	require.True(t, ed.Undo())
	assert.Equal(t, 1, ed.Grid().Active())
	assert.Equal(t, uint8(1), ed.Grid().At(2, 10))

	require.True(t, ed.Redo())
	assert.Equal(t, uint8(1), ed.Grid().At(3, 11))
	assert.False(t, ed.Redo())

	require.True(t, ed.Undo())
	require.True(t, ed.Undo())
	assert.False(t, ed.Undo())
	assert.True(t, ed.Grid().IsBlank())
}

func TestEditorEditDiscardsRedo(t *testing.T) {
	ed := grid.NewEditor(grid.Compile("A"))
	require.NoError(t, ed.Toggle(0, 0))
	require.True(t, ed.Undo())
	require.NoError(t, ed.Toggle(6, 5))
	assert.False(t, ed.Redo())
	assert.Equal(t, uint8(0), ed.Grid().At(0, 0))
	assert.Equal(t, uint8(1), ed.Grid().At(6, 5))
}

func TestEditorToggleTwiceRestores(t *testing.T) {
	start := grid.Compile("OK")
	ed := grid.NewEditor(start)
	require.NoError(t, ed.Toggle(1, 1))
	require.NoError(t, ed.Toggle(1, 1))
	assert.True(t, start.Equal(ed.Grid()))
}

func TestEditorClearAndReplace(t *testing.T) {
	ed := grid.NewEditor(grid.Compile("HI"))
	ed.Clear()
	assert.True(t, ed.Grid().IsBlank())
	assert.Equal(t, 12, ed.Grid().Width())

	ed.Replace(grid.Compile("A"))
	assert.Equal(t, 6, ed.Grid().Width())
	require.True(t, ed.Undo())
	assert.True(t, ed.Grid().IsBlank())
}

func TestEditorToggleOutOfRange(t *testing.T) {
	ed := grid.NewEditor(grid.Compile("A"))
	for _, pos := range [][2]int{{-1, 0}, {7, 0}, {0, 6}, {0, -1}} {
		err := ed.Toggle(pos[0], pos[1])
		require.ErrorIs(t, err, services.ErrContractViolation, "pos %v", pos)
	}
	assert.False(t, ed.Undo())
}
