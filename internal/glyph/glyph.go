package glyph

import (
	"fmt"
	"unicode"
)

const (
	// Rows is the glyph height; one row per weekday.
	Rows = 7
	// Cols is the glyph width in calendar weeks.
	Cols = 5
)

// Glyph is a single character bitmap. Cells are 0 or 1.
type Glyph [Rows][Cols]uint8

// Blank is the all-zero glyph returned for runes without a drawing.
var Blank Glyph

// Lookup returns the glyph for r after uppercasing it. Runes absent from the
// table resolve to Blank.
func Lookup(r rune) Glyph {
	if g, ok := table[unicode.ToUpper(r)]; ok {
		return g
	}
	return Blank
}

// Has reports whether r (case-insensitively) has its own drawing.
func Has(r rune) bool {
	_, ok := table[unicode.ToUpper(r)]
	return ok
}

// Supported returns the runes that have drawings, in table order.
func Supported() []rune {
	out := make([]rune, 0, len(art))
	for _, a := range art {
		out = append(out, a.r)
	}
	return out
}

// Column returns column c of the glyph top to bottom.
func (g Glyph) Column(c int) [Rows]uint8 {
	var col [Rows]uint8
	for r := 0; r < Rows; r++ {
		col[r] = g[r][c]
	}
	return col
}

// IsBlank reports whether every cell is zero.
func (g Glyph) IsBlank() bool {
	return g == Blank
}

var table = buildTable()

func buildTable() map[rune]Glyph {
	out := make(map[rune]Glyph, len(art))
	for _, a := range art {
		g, err := parseArt(a.rows)
		if err != nil {
			panic(fmt.Sprintf("glyph %q: %v", a.r, err))
		}
		out[a.r] = g
	}
	return out
}

func parseArt(rows [Rows]string) (Glyph, error) {
	var g Glyph
	for r, line := range rows {
		if len(line) != Cols {
			return Blank, fmt.Errorf("row %d has width %d, want %d", r, len(line), Cols)
		}
		for c := 0; c < Cols; c++ {
			switch line[c] {
			case '#':
				g[r][c] = 1
			case '.':
			default:
				return Blank, fmt.Errorf("row %d col %d: unexpected %q", r, c, line[c])
			}
		}
	}
	return g, nil
}
