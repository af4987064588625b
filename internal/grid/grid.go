package grid

import (
	"encoding/json"
	"fmt"
	"strings"

	"commitart/internal/glyph"
	"commitart/internal/services"
)

const (
	// Rows is the fixed grid height: one row per weekday.
	Rows = glyph.Rows
	// ColumnsPerRune is the glyph width plus the spacing column.
	ColumnsPerRune = glyph.Cols + 1
	// YearWeeks is the width of one calendar year on the contribution graph.
	YearWeeks = 52
	// MaxTextLength keeps compiled text within one calendar year.
	MaxTextLength = YearWeeks / ColumnsPerRune
)

// Grid is an immutable, rectangular 7-row matrix of 0/1 cells.
type Grid struct {
	width int
	cells [Rows][]uint8
}

// Compile renders text using the glyph table. Every rune contributes its five
// glyph columns and one zero spacing column, including the final rune.
func Compile(text string) Grid {
	runes := []rune(text)
	g := Grid{width: len(runes) * ColumnsPerRune}
	for r := 0; r < Rows; r++ {
		g.cells[r] = make([]uint8, 0, g.width)
	}
	for _, ch := range runes {
		gl := glyph.Lookup(ch)
		for r := 0; r < Rows; r++ {
			g.cells[r] = append(g.cells[r], gl[r][:]...)
			g.cells[r] = append(g.cells[r], 0)
		}
	}
	return g
}

// Blank returns an all-zero grid of the given width.
func Blank(width int) Grid {
	if width < 0 {
		width = 0
	}
	g := Grid{width: width}
	for r := 0; r < Rows; r++ {
		g.cells[r] = make([]uint8, width)
	}
	return g
}

// New validates a caller-authored matrix and copies it into a Grid. It fails
// with services.ErrContractViolation when the matrix does not have exactly
// seven rows of equal length or holds a value other than 0 or 1.
func New(rows [][]uint8) (Grid, error) {
	if len(rows) != Rows {
		return Grid{}, services.Wrap(services.ErrContractViolation, "grid", "new",
			fmt.Sprintf("grid has %d rows, want %d", len(rows), Rows), nil)
	}
	width := len(rows[0])
	g := Grid{width: width}
	for r, row := range rows {
		if len(row) != width {
			return Grid{}, services.Wrap(services.ErrContractViolation, "grid", "new",
				fmt.Sprintf("row %d has %d columns, want %d", r, len(row), width), nil)
		}
		for c, v := range row {
			if v > 1 {
				return Grid{}, services.Wrap(services.ErrContractViolation, "grid", "new",
					fmt.Sprintf("cell (%d,%d) = %d, want 0 or 1", r, c, v), nil)
			}
		}
		g.cells[r] = append(make([]uint8, 0, width), row...)
	}
	return g, nil
}

// Width returns the number of columns (calendar weeks).
func (g Grid) Width() int { return g.width }

// Rows returns the number of rows, which is always seven.
func (g Grid) Rows() int { return Rows }

// At returns the cell value at (row, col). Out-of-range positions read as 0.
func (g Grid) At(row, col int) uint8 {
	if row < 0 || row >= Rows || col < 0 || col >= g.width {
		return 0
	}
	return g.cells[row][col]
}

// Cells returns a deep copy of the matrix.
func (g Grid) Cells() [][]uint8 {
	out := make([][]uint8, Rows)
	for r := 0; r < Rows; r++ {
		out[r] = make([]uint8, g.width)
		copy(out[r], g.cells[r])
	}
	return out
}

// Active counts the cells set to 1.
func (g Grid) Active() int {
	n := 0
	for r := 0; r < Rows; r++ {
		for _, v := range g.cells[r] {
			n += int(v)
		}
	}
	return n
}

// IsBlank reports whether no cell is set.
func (g Grid) IsBlank() bool { return g.Active() == 0 }

// Equal reports whether both grids have the same shape and cells.
func (g Grid) Equal(other Grid) bool {
	if g.width != other.width {
		return false
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < g.width; c++ {
			if g.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// PadTo right-pads the grid with zero columns up to width. Grids already at
// least that wide are returned unchanged; PadTo never truncates.
func (g Grid) PadTo(width int) Grid {
	if width <= g.width {
		return g
	}
	out := Grid{width: width}
	for r := 0; r < Rows; r++ {
		out.cells[r] = make([]uint8, width)
		copy(out.cells[r], g.cells[r])
	}
	return out
}

// with returns a copy of g with (row, col) set to v.
func (g Grid) with(row, col int, v uint8) Grid {
	out := Grid{width: g.width}
	for r := 0; r < Rows; r++ {
		out.cells[r] = append(make([]uint8, 0, g.width), g.cells[r]...)
	}
	out.cells[row][col] = v
	return out
}

// Render draws the grid one text line per row using on and off for cells.
func Render(g Grid, on, off string) string {
	var b strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < g.width; c++ {
			if g.cells[r][c] == 1 {
				b.WriteString(on)
			} else {
				b.WriteString(off)
			}
		}
		if r < Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// MarshalJSON encodes the grid as an array of seven rows of 0/1 integers.
func (g Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]int, Rows)
	for r := 0; r < Rows; r++ {
		rows[r] = make([]int, g.width)
		for c := 0; c < g.width; c++ {
			rows[r][c] = int(g.cells[r][c])
		}
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes and validates a JSON matrix.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return services.Wrap(services.ErrValidation, "grid", "decode json", "", err)
	}
	cells := make([][]uint8, len(rows))
	for r, row := range rows {
		cells[r] = make([]uint8, len(row))
		for c, v := range row {
			if v != 0 && v != 1 {
				return services.Wrap(services.ErrValidation, "grid", "decode json",
					fmt.Sprintf("cell (%d,%d) = %d, want 0 or 1", r, c, v), nil)
			}
			cells[r][c] = uint8(v)
		}
	}
	parsed, err := New(cells)
	if err != nil {
		return invalidInput("decode json", err)
	}
	*g = parsed
	return nil
}

// invalidInput reclassifies a shape error found in user-supplied data as a
// validation failure. The contract-violation marker is dropped on purpose so
// KindOf reports the user-facing class.
func invalidInput(operation string, err error) error {
	msg := strings.TrimPrefix(err.Error(), services.ErrContractViolation.Error()+": ")
	return services.Wrap(services.ErrValidation, "grid", operation, msg, nil)
}
