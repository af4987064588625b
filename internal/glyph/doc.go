// Package glyph holds the fixed 7x5 bitmap font used to draw text onto the
// contribution calendar.
//
// The table is built once at package initialization and never mutated. Lookup
// is case-insensitive; any rune without a drawing (whitespace, most
// punctuation, non-Latin letters) resolves to Blank so unknown input renders
// as silence instead of failing.
package glyph
