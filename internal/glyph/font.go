package glyph

type glyphArt struct {
	r    rune
	rows [Rows]string
}

// art lists every drawable rune. '#' is an active cell, '.' is empty.
var art = []glyphArt{
	{'A', [Rows]string{
		".###.",
		"#...#",
		"#...#",
		"#####",
		"#...#",
		"#...#",
		"#...#",
	}},
	{'B', [Rows]string{
		"####.",
		"#...#",
		"#...#",
		"####.",
		"#...#",
		"#...#",
		"####.",
	}},
	{'C', [Rows]string{
		".###.",
		"#...#",
		"#....",
		"#....",
		"#....",
		"#...#",
		".###.",
	}},
	{'D', [Rows]string{
		"####.",
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		"####.",
	}},
	{'E', [Rows]string{
		"#####",
		"#....",
		"#....",
		"####.",
		"#....",
		"#....",
		"#####",
	}},
	{'F', [Rows]string{
		"#####",
		"#....",
		"#....",
		"####.",
		"#....",
		"#....",
		"#....",
	}},
	{'G', [Rows]string{
		".###.",
		"#...#",
		"#....",
		"#.###",
		"#...#",
		"#...#",
		".###.",
	}},
	{'H', [Rows]string{
		"#...#",
		"#...#",
		"#...#",
		"#####",
		"#...#",
		"#...#",
		"#...#",
	}},
	{'I', [Rows]string{
		".###.",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		".###.",
	}},
	{'J', [Rows]string{
		"..###",
		"...#.",
		"...#.",
		"...#.",
		"...#.",
		"#..#.",
		".##..",
	}},
	{'K', [Rows]string{
		"#...#",
		"#..#.",
		"#.#..",
		"##...",
		"#.#..",
		"#..#.",
		"#...#",
	}},
	{'L', [Rows]string{
		"#....",
		"#....",
		"#....",
		"#....",
		"#....",
		"#....",
		"#####",
	}},
	{'M', [Rows]string{
		"#...#",
		"##.##",
		"#.#.#",
		"#.#.#",
		"#...#",
		"#...#",
		"#...#",
	}},
	{'N', [Rows]string{
		"#...#",
		"#...#",
		"##..#",
		"#.#.#",
		"#..##",
		"#...#",
		"#...#",
	}},
	{'O', [Rows]string{
		".###.",
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		".###.",
	}},
	{'P', [Rows]string{
		"####.",
		"#...#",
		"#...#",
		"####.",
		"#....",
		"#....",
		"#....",
	}},
	{'Q', [Rows]string{
		".###.",
		"#...#",
		"#...#",
		"#...#",
		"#.#.#",
		"#..#.",
		".##.#",
	}},
	{'R', [Rows]string{
		"####.",
		"#...#",
		"#...#",
		"####.",
		"#.#..",
		"#..#.",
		"#...#",
	}},
	{'S', [Rows]string{
		".####",
		"#....",
		"#....",
		".###.",
		"....#",
		"....#",
		"####.",
	}},
	{'T', [Rows]string{
		"#####",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
	}},
	{'U', [Rows]string{
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		".###.",
	}},
	{'V', [Rows]string{
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		"#...#",
		".#.#.",
		"..#..",
	}},
	{'W', [Rows]string{
		"#...#",
		"#...#",
		"#...#",
		"#.#.#",
		"#.#.#",
		"#.#.#",
		".#.#.",
	}},
	{'X', [Rows]string{
		"#...#",
		"#...#",
		".#.#.",
		"..#..",
		".#.#.",
		"#...#",
		"#...#",
	}},
	{'Y', [Rows]string{
		"#...#",
		"#...#",
		".#.#.",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
	}},
	{'Z', [Rows]string{
		"#####",
		"....#",
		"...#.",
		"..#..",
		".#...",
		"#....",
		"#####",
	}},
	{'0', [Rows]string{
		".###.",
		"#...#",
		"#..##",
		"#.#.#",
		"##..#",
		"#...#",
		".###.",
	}},
	{'1', [Rows]string{
		"..#..",
		".##..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		".###.",
	}},
	{'2', [Rows]string{
		".###.",
		"#...#",
		"....#",
		"...#.",
		"..#..",
		".#...",
		"#####",
	}},
	{'3', [Rows]string{
		"#####",
		"...#.",
		"..#..",
		"...#.",
		"....#",
		"#...#",
		".###.",
	}},
	{'4', [Rows]string{
		"...#.",
		"..##.",
		".#.#.",
		"#..#.",
		"#####",
		"...#.",
		"...#.",
	}},
	{'5', [Rows]string{
		"#####",
		"#....",
		"####.",
		"....#",
		"....#",
		"#...#",
		".###.",
	}},
	{'6', [Rows]string{
		"..##.",
		".#...",
		"#....",
		"####.",
		"#...#",
		"#...#",
		".###.",
	}},
	{'7', [Rows]string{
		"#####",
		"....#",
		"...#.",
		"..#..",
		".#...",
		".#...",
		".#...",
	}},
	{'8', [Rows]string{
		".###.",
		"#...#",
		"#...#",
		".###.",
		"#...#",
		"#...#",
		".###.",
	}},
	{'9', [Rows]string{
		".###.",
		"#...#",
		"#...#",
		".####",
		"....#",
		"...#.",
		".##..",
	}},
	{'!', [Rows]string{
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		"..#..",
		".....",
		"..#..",
	}},
	{'-', [Rows]string{
		".....",
		".....",
		".....",
		"#####",
		".....",
		".....",
		".....",
	}},
	{'.', [Rows]string{
		".....",
		".....",
		".....",
		".....",
		".....",
		".##..",
		".##..",
	}},
	{':', [Rows]string{
		".....",
		".##..",
		".##..",
		".....",
		".##..",
		".##..",
		".....",
	}},
	{'+', [Rows]string{
		".....",
		"..#..",
		"..#..",
		"#####",
		"..#..",
		"..#..",
		".....",
	}},
	{'#', [Rows]string{
		".#.#.",
		".#.#.",
		"#####",
		".#.#.",
		"#####",
		".#.#.",
		".#.#.",
	}},
	{'<', [Rows]string{
		"...#.",
		"..#..",
		".#...",
		"#....",
		".#...",
		"..#..",
		"...#.",
	}},
	{'>', [Rows]string{
		".#...",
		"..#..",
		"...#.",
		"....#",
		"...#.",
		"..#..",
		".#...",
	}},
	{'/', [Rows]string{
		".....",
		"....#",
		"...#.",
		"..#..",
		".#...",
		"#....",
		".....",
	}},
}
