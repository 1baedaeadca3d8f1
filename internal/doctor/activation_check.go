package doctor

import (
	"context"
	"fmt"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// ActivationCheck verifies the script root is wired into the user's
// environment.
type ActivationCheck struct {
	engine   Engine
	inactive bool
}

var (
	_ Check = (*ActivationCheck)(nil)
	_ Fixer = (*ActivationCheck)(nil)
)

// NewActivationCheck creates an activation check.
func NewActivationCheck(engine Engine) *ActivationCheck {
	return &ActivationCheck{engine: engine}
}

// Name returns the unique identifier for this check.
func (c *ActivationCheck) Name() string {
	return "activation"
}

// Category returns the grouping for this check.
func (c *ActivationCheck) Category() string {
	return "activation"
}

// Run executes the activation check.
func (c *ActivationCheck) Run(ctx context.Context) *CheckResult {
	c.inactive = false
	target := c.engine.Binder().Describe()
	details := map[string]any{
		"target":      target,
		"script_root": c.engine.ScriptRoot(),
	}

	active, err := c.engine.Active(ctx)
	switch {
	case errors.Is(err, errors.ErrUnsupportedShell):
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  err.Error(),
			Details:  details,
			FixHint:  errors.SuggestionFor(err),
		}
	case err != nil:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot inspect %s: %v", target, err),
			Details:  details,
		}
	case !active:
		c.inactive = true
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("script root is not on PATH via %s", target),
			Details:  details,
			Fixable:  true,
			FixHint:  "run: aliasx activate",
		}
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  fmt.Sprintf("activated via %s; new shell sessions pick it up", target),
		Details:  details,
	}
}

// CanFix reports whether Run found activation missing.
func (c *ActivationCheck) CanFix() bool {
	return c.inactive
}

// Fix binds activation.
func (c *ActivationCheck) Fix(ctx context.Context) []FixResult {
	r := FixResult{Check: c.Name(), Path: c.engine.Binder().Describe()}
	if err := c.engine.Activate(ctx); err != nil {
		r.Description = "activation failed"
		r.Error = err
	} else {
		r.Fixed = true
		r.Description = "activated; open a new shell session"
		c.inactive = false
	}
	return []FixResult{r}
}
