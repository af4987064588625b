package grid

import (
	"fmt"

	"commitart/internal/services"
)

// Editor applies free-hand edits to a grid and keeps an undo/redo history.
// It is not safe for concurrent use.
type Editor struct {
	history []Grid
	index   int
}

// NewEditor starts an editing session from g.
func NewEditor(g Grid) *Editor {
	return &Editor{history: []Grid{g}}
}

// Grid returns the current state.
func (e *Editor) Grid() Grid {
	return e.history[e.index]
}

// Toggle flips the cell at (row, col). Positions outside the grid are a
// contract violation.
func (e *Editor) Toggle(row, col int) error {
	cur := e.Grid()
	if row < 0 || row >= Rows || col < 0 || col >= cur.Width() {
		return services.Wrap(services.ErrContractViolation, "grid", "toggle",
			fmt.Sprintf("cell (%d,%d) outside %dx%d grid", row, col, Rows, cur.Width()), nil)
	}
	e.push(cur.with(row, col, 1-cur.At(row, col)))
	return nil
}

// Clear resets every cell while keeping the width.
func (e *Editor) Clear() {
	e.push(Blank(e.Grid().Width()))
}

// Replace records g as the next state, for example after recompiling text.
func (e *Editor) Replace(g Grid) {
	e.push(g)
}

// Undo steps back one edit. It reports false when there is nothing to undo.
func (e *Editor) Undo() bool {
	if e.index == 0 {
		return false
	}
	e.index--
	return true
}

// Redo re-applies an undone edit. It reports false when there is nothing to redo.
func (e *Editor) Redo() bool {
	if e.index >= len(e.history)-1 {
		return false
	}
	e.index++
	return true
}

func (e *Editor) push(g Grid) {
	e.history = append(e.history[:e.index+1], g)
	e.index = len(e.history) - 1
}
