// Package terminal reads the size and kind of the output terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal returns true if stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// BoardSize returns the largest board, one cell per character, that fits the terminal
// with reservedRows lines left for other output
func BoardSize(reservedRows int) (width, height int) {
	width, height = GetSize()
	return fit(width, height, reservedRows)
}

func fit(width, height, reservedRows int) (int, int) {
	return max(width, 1), max(height-reservedRows, 1)
}
