package doctor

import (
	"context"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/alias"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/setting"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

// SettingSyntaxCheck parses the settings document the way the engine loads it
// and reports syntax errors with their position, placeholders left unresolved
// after substitution, and alias names that cannot become script files.
type SettingSyntaxCheck struct {
	fs   afero.Fs
	path string
	vars map[string]string
}

var _ Check = (*SettingSyntaxCheck)(nil)

// NewSettingSyntaxCheck creates a check for the settings file at path.
func NewSettingSyntaxCheck(fsys afero.Fs, path string, vars map[string]string) *SettingSyntaxCheck {
	return &SettingSyntaxCheck{fs: fsys, path: path, vars: vars}
}

// Name returns the unique identifier for this check.
func (c *SettingSyntaxCheck) Name() string {
	return "setting-syntax"
}

// Category returns the grouping for this check.
func (c *SettingSyntaxCheck) Category() string {
	return "settings"
}

// Run executes the settings validation.
func (c *SettingSyntaxCheck) Run(_ context.Context) *CheckResult {
	exists, err := fileutil.Exists(c.fs, c.path)
	if err != nil {
		return c.fail(SeverityError, fmt.Sprintf("cannot stat settings file: %v", err))
	}
	if !exists {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "settings file does not exist yet; it is created on first use",
			Details:  map[string]any{"path": c.path},
		}
	}

	raw, err := fileutil.ReadFileWithLimit(c.fs, c.path)
	if err != nil {
		return c.fail(SeverityError, fmt.Sprintf("read error: %v", err))
	}

	text := setting.Substitute(string(raw), c.vars)
	doc, err := setting.Parse(text, c.path)
	if err != nil {
		result := c.fail(SeverityError, formatTOMLError(err))
		result.FixHint = "fix the syntax in " + c.path
		if len(c.vars) > 0 && parses(string(raw)) {
			result.FixHint = "a --define value breaks the document; values are inserted verbatim"
		}
		return result
	}

	var issues []issue
	for _, name := range setting.Placeholders(text) {
		issues = append(issues, issue{
			Path:     c.path,
			Problem:  fmt.Sprintf("placeholder {{%s}} has no value", name),
			Severity: SeverityWarning,
			FixHint:  "pass --define " + name + "=<value>",
		})
	}
	for _, group := range doc.GroupNames() {
		for name := range doc.Alias[group].Mapping {
			if err := alias.ValidateName(name); err != nil {
				issues = append(issues, issue{
					Path:     c.path,
					Alias:    name,
					Problem:  fmt.Sprintf("group %q: %v", group, err),
					Severity: SeverityError,
					FixHint:  "rename the alias in " + c.path,
				})
			}
		}
	}

	return buildResult(c, issues, doc.Len(),
		fmt.Sprintf("%d alias(es) in %d group(s) parsed successfully", doc.Len(), len(doc.Alias)),
		fmt.Sprintf("found %d problem(s) in %s", len(issues), c.path))
}

func (c *SettingSyntaxCheck) fail(status Severity, msg string) *CheckResult {
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Message:  msg,
		Details:  map[string]any{"path": c.path},
	}
}

func parses(text string) bool {
	var v any
	return toml.Unmarshal([]byte(text), &v) == nil
}

// formatTOMLError extracts position information from TOML decode errors.
func formatTOMLError(err error) string {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("TOML syntax error at line %d, column %d: %s",
			row, col, strings.TrimSpace(decodeErr.Error()))
	}

	return fmt.Sprintf("TOML error: %v", err)
}
