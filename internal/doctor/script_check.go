package doctor

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/alias"
	"github.com/thoreinstein/aliasx/internal/script"
	"github.com/thoreinstein/aliasx/internal/setting"
)

// ScriptDriftCheck compares the script root with the settings document. It
// reports aliases without a script, scripts whose content no longer matches
// the command, and orphan scripts no alias maps (left behind by clear).
type ScriptDriftCheck struct {
	engine Engine

	stale   bool
	orphans []string
}

var (
	_ Check = (*ScriptDriftCheck)(nil)
	_ Fixer = (*ScriptDriftCheck)(nil)
)

// NewScriptDriftCheck creates a drift check against engine.
func NewScriptDriftCheck(engine Engine) *ScriptDriftCheck {
	return &ScriptDriftCheck{engine: engine}
}

// Name returns the unique identifier for this check.
func (c *ScriptDriftCheck) Name() string {
	return "script-drift"
}

// Category returns the grouping for this check.
func (c *ScriptDriftCheck) Category() string {
	return "scripts"
}

// Run executes the drift check.
func (c *ScriptDriftCheck) Run(_ context.Context) *CheckResult {
	c.stale, c.orphans = false, nil

	fsys := c.engine.Fs()
	root := c.engine.ScriptRoot()
	gen := c.engine.Generator()
	expected := ExpectedScripts(c.engine.Document())

	var issues []issue
	present := make(map[string]bool)

	infos, err := afero.ReadDir(fsys, root)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot read script root: %v", err),
			Details:  map[string]any{"path": root},
		}
	}
	for _, fi := range infos {
		name, ok := strings.CutSuffix(fi.Name(), gen.Ext())
		if fi.IsDir() || !ok || strings.HasPrefix(fi.Name(), ".") {
			continue
		}
		present[name] = true
		if _, mapped := expected[name]; !mapped {
			c.orphans = append(c.orphans, name)
			issues = append(issues, issue{
				Path:     script.Path(gen, root, name),
				Alias:    name,
				Problem:  "script has no alias in the settings file",
				Severity: SeverityWarning,
				Fixable:  true,
				FixHint:  "run: aliasx doctor --fix",
			})
		}
	}

	for _, name := range slices.Sorted(maps.Keys(expected)) {
		path := script.Path(gen, root, name)
		if !present[name] {
			c.stale = true
			issues = append(issues, issue{
				Path:     path,
				Alias:    name,
				Problem:  "script is missing",
				Severity: SeverityWarning,
				Fixable:  true,
				FixHint:  "run: aliasx rebuild",
			})
			continue
		}
		want, err := gen.Content(expected[name])
		if err != nil {
			issues = append(issues, issue{
				Path:     path,
				Alias:    name,
				Problem:  err.Error(),
				Severity: SeverityError,
			})
			continue
		}
		got, err := afero.ReadFile(fsys, path)
		if err != nil || !bytes.Equal(got, want) {
			c.stale = true
			issues = append(issues, issue{
				Path:     path,
				Alias:    name,
				Problem:  "script content does not match the command",
				Severity: SeverityWarning,
				Fixable:  true,
				FixHint:  "run: aliasx rebuild",
			})
		}
	}

	return buildResult(c, issues, len(expected),
		fmt.Sprintf("all %d script(s) match the settings file", len(expected)),
		fmt.Sprintf("found %d script problem(s) in %s", len(issues), root))
}

// CanFix reports whether Run found missing, stale or orphan scripts.
func (c *ScriptDriftCheck) CanFix() bool {
	return c.stale || len(c.orphans) > 0
}

// Fix rebuilds every script when any was missing or stale, then deletes orphans.
func (c *ScriptDriftCheck) Fix(ctx context.Context) []FixResult {
	var results []FixResult
	root := c.engine.ScriptRoot()

	if c.stale {
		r := FixResult{Check: c.Name(), Path: root}
		if err := c.engine.Rebuild(ctx); err != nil {
			r.Description = "rebuild failed"
			r.Error = err
		} else {
			r.Fixed = true
			r.Description = "rebuilt all scripts"
			c.stale = false
		}
		results = append(results, r)
	}

	gen := c.engine.Generator()
	for _, name := range c.orphans {
		r := FixResult{Check: c.Name(), Path: script.Path(gen, root, name)}
		if err := gen.Remove(root, name); err != nil {
			r.Description = "could not remove orphan script"
			r.Error = err
		} else {
			r.Fixed = true
			r.Description = "removed orphan script"
		}
		results = append(results, r)
	}
	c.orphans = nil

	return results
}

// ExpectedScripts maps every alias name to the command its script should
// carry, taken from the owning group (see setting.Document.Owner). Names
// that cannot be script file names are left out.
func ExpectedScripts(doc *setting.Document) map[string]string {
	out := make(map[string]string)
	for _, name := range doc.AliasNames() {
		if alias.ValidateName(name) != nil {
			continue
		}
		if _, a, ok := doc.Owner(name); ok {
			out[name] = a.Cmd
		}
	}
	return out
}
