// Package logs reads the commitart log file for the `commitart logs` command.
//
// Last returns the final N lines with bounded memory and the offset to resume
// from; Follow polls from that offset until its context ends, starting over
// when the file is truncated or rotated.
package logs
