// Package grid turns text into the 7-row pixel matrix drawn on a contribution
// calendar and validates caller-authored matrices.
//
// Rows are weekdays (row 0 is Sunday) and columns are calendar weeks. Compile
// draws each rune with its glyph followed by one blank spacing column, so a
// string of n runes is always 6n columns wide, trailing spacer included. New
// and Parse accept free-hand matrices; once constructed a Grid is immutable and
// rectangular, which lets the schedule compiler trust its shape. Editor layers
// toggle, undo, and redo on top for hand edits.
package grid
