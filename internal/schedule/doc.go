// Package schedule converts a pixel grid into the dated commit plan sent to
// the generation endpoint.
//
// The anchor date is normalized to noon UTC on its calendar day and rolled
// back to the Sunday on or before it; noon keeps later day arithmetic clear
// of daylight-saving and half-hour offsets. Each active cell (row, col) then
// becomes one entry dated sunday + col weeks + row days. Compilation is pure
// and deterministic.
package schedule
