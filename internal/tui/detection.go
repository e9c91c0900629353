package tui

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/util"
)

// ShouldUseTUI returns true if the command should use interactive TUI mode.
// TUI mode is enabled when:
// - stdout is a TTY (not piped or redirected)
// - --no-interactive flag is not set
// - --plain is not set on commands that have it
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() {
		return false
	}

	noInteractive, _ := cmd.Flags().GetBool("no-interactive")
	if noInteractive {
		return false
	}

	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		return false
	}

	return true
}
