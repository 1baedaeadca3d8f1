package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/logging"
)

// Output styles. fatih/color disables them when stdout is not a terminal or
// NO_COLOR is set.
var (
	styleHeader = color.New(color.Bold)
	styleGroup  = color.New(color.FgCyan, color.Bold)
	styleAlias  = color.New(color.FgGreen)
	styleMuted  = color.New(color.FgHiBlack)
	styleWarn   = color.New(color.FgYellow)
)

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// printf writes to the command's stdout unless --quiet is set.
func printf(cmd *cobra.Command, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// interactive reports whether the command is attached to a terminal.
func interactive(cmd *cobra.Command) bool {
	return logging.IsInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
}
