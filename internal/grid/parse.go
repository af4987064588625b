package grid

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"commitart/internal/services"
)

// Parse reads a free-hand grid. JSON input is a matrix of 0/1 integers. Any
// other input is text art: one line per row, '#' or '1' for an active cell and
// '.', '0', '_' or a space for an empty one. Empty lines and lines starting
// with ';' are ignored; a line of spaces is an all-empty row.
func Parse(r io.Reader) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Grid{}, fmt.Errorf("read grid: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Grid{}, services.Wrap(services.ErrValidation, "grid", "parse", "grid input is empty", nil)
	}
	if trimmed[0] == '[' {
		var g Grid
		if err := g.UnmarshalJSON(trimmed); err != nil {
			return Grid{}, err
		}
		return g, nil
	}
	return parseArt(data)
}

func parseArt(data []byte) (Grid, error) {
	var rows [][]uint8
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}
		row := make([]uint8, 0, len(text))
		for col, ch := range text {
			switch ch {
			case '#', '1':
				row = append(row, 1)
			case '.', '0', '_', ' ':
				row = append(row, 0)
			default:
				return Grid{}, services.Wrap(services.ErrValidation, "grid", "parse",
					fmt.Sprintf("line %d col %d: unexpected %q", line, col+1, ch), nil)
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return Grid{}, fmt.Errorf("scan grid: %w", err)
	}
	g, err := New(rows)
	if err != nil {
		return Grid{}, invalidInput("parse", err)
	}
	return g, nil
}
