package util

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/fatih/color"
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// IsInputTTY reports whether stdin is a terminal, i.e. whether a
// confirmation prompt can be answered.
func IsInputTTY() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// InitColor disables color when asked to or when stdout is not a terminal.
func InitColor(noColor bool) {
	if noColor || !IsTTY() {
		color.NoColor = true
	}
}
