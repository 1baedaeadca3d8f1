package commands

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/alias"
	"github.com/thoreinstein/aliasx/internal/cli/prompt"
	"github.com/thoreinstein/aliasx/internal/errors"
)

var (
	removeGroup       string
	removeEntireGroup bool
)

// newSelector builds the alias picker; tests replace it.
var newSelector = func(cmd *cobra.Command) *prompt.Selector {
	if interactive(cmd) {
		return prompt.NewSelector()
	}
	return prompt.NewSelectorWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
}

func init() {
	removeCmd.Flags().StringVarP(&removeGroup, "group", "g", "",
		"group to remove the alias from (default: the group that has it)")
	removeCmd.Flags().BoolVar(&removeEntireGroup, "entire-group", false,
		"remove every alias in the group named by the argument")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove [alias]",
	Aliases: []string{"rm"},
	Short:   "Remove an alias",
	Long: `Remove an alias and its script.

Without --group the alias is looked up across all groups; when several
groups define it you are asked which one to remove. Without an argument
you pick from every alias.

With --entire-group the argument names a group and every alias in it is
removed. The emptied group stays in the settings file.

A script is only deleted once no group maps the alias name any more.`,
	Example: `  # Remove an alias
  aliasx remove ll

  # Remove from a specific group
  aliasx remove ll --group work

  # Remove a whole group
  aliasx remove --entire-group work

  See Also: aliasx list, aliasx clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := newEngine()
	if err != nil {
		return err
	}

	if removeEntireGroup {
		group := removeGroup
		if len(args) == 1 {
			group = args[0]
		}
		if group == "" {
			return errors.NewUserError(errors.New("no group given"), "aliasx remove --entire-group <group>")
		}
		n := e.RemoveGroup(group)
		if n == 0 {
			return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "group %q has no aliases", group), "Run: aliasx list")
		}
		if err := e.Commit(ctx); err != nil {
			return err
		}
		printf(cmd, "removed %d alias(es) from %s\n", n, group)
		return nil
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	candidates := removalCandidates(e, query, removeGroup)
	if len(candidates) == 0 {
		if query == "" {
			return errors.NewUserError(errors.Wrap(errors.ErrNotFound, "no aliases defined"), "Run: aliasx set <alias> <command>")
		}
		return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "alias %q", query), "Run: aliasx list")
	}

	picked, err := newSelector(cmd).Select(query, candidates)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return nil
		}
		return err
	}

	if err := e.Remove(picked.Group, picked.Alias); err != nil {
		return err
	}
	if err := e.Commit(ctx); err != nil {
		return err
	}
	printf(cmd, "%s %s (%s)\n", styleWarn.Sprint("removed"), picked.Alias, picked.Group)
	return nil
}

// removalCandidates lists (group, alias) pairs matching name and group. Empty
// filters match everything.
func removalCandidates(e *alias.Engine, name, group string) []prompt.Candidate {
	all := e.GetAll()
	var out []prompt.Candidate
	for _, g := range slices.Sorted(maps.Keys(all)) {
		if group != "" && g != group {
			continue
		}
		mapping := all[g].Mapping
		for _, a := range slices.Sorted(maps.Keys(mapping)) {
			if name != "" && a != name {
				continue
			}
			out = append(out, prompt.Candidate{Group: g, Alias: a, Cmd: mapping[a].Cmd})
		}
	}
	return out
}
