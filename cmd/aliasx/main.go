// Package main is the entry point for the aliasx CLI.
package main

import (
	"os"

	"github.com/thoreinstein/aliasx/cmd/aliasx/commands"
	"github.com/thoreinstein/aliasx/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(errors.ExitCodeFor(err))
	}
}
