// Package termsize resolves how many columns the ASCII renderer may use.
package termsize

import (
	"os"

	"golang.org/x/term"
)

const (
	FallbackColumns = 80
	FallbackRows    = 24

	// Margin keeps rendered rows from touching the right edge, where some
	// terminals wrap early.
	Margin = 2
)

// Size reports the terminal size of f, or the 80x24 fallback when f is not a
// terminal.
func Size(f *os.File) (columns, rows int) {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return FallbackColumns, FallbackRows
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return FallbackColumns, FallbackRows
	}
	return w, h
}

// Usable subtracts the margin from a column count, never going below one.
func Usable(columns int) int {
	if columns-Margin < 1 {
		return 1
	}
	return columns - Margin
}

// Width is the render width for output written to f.
func Width(f *os.File) int {
	columns, _ := Size(f)
	return Usable(columns)
}
