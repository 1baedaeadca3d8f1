package doctor

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/thoreinstein/aliasx/internal/shell"
)

// CommandSyntaxCheck parses every alias command with the grammar of the
// user's shell.
type CommandSyntaxCheck struct {
	engine    Engine
	shellName string
}

var _ Check = (*CommandSyntaxCheck)(nil)

// NewCommandSyntaxCheck creates a check that parses commands as shellName.
// An empty shellName uses the bash grammar.
func NewCommandSyntaxCheck(engine Engine, shellName string) *CommandSyntaxCheck {
	return &CommandSyntaxCheck{engine: engine, shellName: shellName}
}

// Name returns the unique identifier for this check.
func (c *CommandSyntaxCheck) Name() string {
	return "command-syntax"
}

// Category returns the grouping for this check.
func (c *CommandSyntaxCheck) Category() string {
	return "aliases"
}

// Run executes the command syntax check.
func (c *CommandSyntaxCheck) Run(_ context.Context) *CheckResult {
	doc := c.engine.Document()

	var issues []issue
	checked := 0
	for _, group := range doc.GroupNames() {
		mapping := doc.Alias[group].Mapping
		for _, name := range slices.Sorted(maps.Keys(mapping)) {
			checked++
			if err := shell.ValidateCommand(mapping[name].Cmd, c.shellName); err != nil {
				issues = append(issues, issue{
					Alias:    name,
					Problem:  fmt.Sprintf("group %q: %v", group, err),
					Severity: SeverityWarning,
					FixHint:  "re-run: aliasx set <alias> '<command>'",
				})
			}
		}
	}

	return buildResult(c, issues, checked,
		fmt.Sprintf("all %d command(s) parse", checked),
		fmt.Sprintf("%d command(s) have syntax errors", len(issues)))
}
