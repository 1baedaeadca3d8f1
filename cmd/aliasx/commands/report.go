package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// ReportError prints err and its suggestion, if any. Errors that only carry
// an exit code (doctor results) print nothing.
func ReportError(w io.Writer, err error) {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil && exitErr.Suggestion == "" {
		return
	}

	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err.Error())

	if hint := errors.SuggestionFor(err); hint != "" {
		color.New(color.FgYellow).Fprint(w, "hint: ")
		fmt.Fprintln(w, hint)
	}
}
