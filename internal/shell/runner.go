package shell

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// Runner executes a child process and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.Bytes(), errors.Wrapf(err, "%s failed", name)
	}
	return out.Bytes(), nil
}
