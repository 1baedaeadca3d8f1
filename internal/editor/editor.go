// Package editor launches the user's preferred text editor.
package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"mvdan.cc/sh/v3/shell"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// Launcher runs an interactive program attached to the terminal.
type Launcher func(ctx context.Context, name string, args ...string) error

// Editor opens files in $EDITOR.
type Editor struct {
	out    io.Writer
	launch Launcher
	goos   string
	lookup func(string) (string, error)
}

// New returns an Editor that prints the location to out and runs the editor
// with the process's stdio.
func New(out io.Writer) *Editor {
	return &Editor{
		out:    out,
		launch: runAttached,
		goos:   runtime.GOOS,
		lookup: exec.LookPath,
	}
}

// WithLauncher replaces how the editor process is started.
func (e *Editor) WithLauncher(l Launcher) *Editor {
	e.launch = l
	return e
}

// Open launches the editor on path and waits for it to exit.
func (e *Editor) Open(ctx context.Context, path string) error {
	argv, err := e.Command(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.out, "Location: %s\n", path)

	if err := e.launch(ctx, argv[0], argv[1:]...); err != nil {
		return errors.Wrap(err, "running editor")
	}
	return nil
}

// Command returns the argv used to edit path. $EDITOR and $VISUAL are split
// with shell quoting rules so values like "code --wait" work.
func (e *Editor) Command(path string) ([]string, error) {
	fields, err := shell.Fields(e.detect(), os.Getenv)
	if err != nil {
		return nil, errors.Wrap(err, "parsing editor command")
	}
	if len(fields) == 0 {
		return nil, errors.New("editor command is empty")
	}
	return append(fields, path), nil
}

// detect returns the editor command. Fallback chain: $EDITOR, $VISUAL, then
// notepad on Windows, otherwise nano, then vi.
func (e *Editor) detect() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if e.goos == "windows" {
		return "notepad"
	}

	if _, err := e.lookup("nano"); err == nil {
		return "nano"
	}

	return "vi"
}

func runAttached(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
