package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/alias"
	"github.com/thoreinstein/aliasx/internal/errors"
)

var (
	listJSON  bool
	listNames bool
	listGroup string
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")
	listCmd.Flags().BoolVar(&listNames, "names", false, "print only alias names, one per line")
	listCmd.Flags().StringVarP(&listGroup, "group", "g", "", "only list this group")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List aliases",
	Long: `List aliases from the settings file, grouped and sorted by name.

Reads never see changes that have not been committed.`,
	Example: `  # Table of all aliases
  aliasx list

  # One group as JSON
  aliasx list --group work --json

  See Also: aliasx set, aliasx remove`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listEntry is one alias in JSON output.
type listEntry struct {
	Group  string `json:"group"`
	Alias  string `json:"alias"`
	Cmd    string `json:"cmd"`
	Script string `json:"script"`
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	return writeList(cmd.OutOrStdout(), e)
}

func writeList(w io.Writer, e *alias.Engine) error {
	var entries []listEntry
	all := e.GetAll()
	if listGroup != "" {
		if _, ok := all[listGroup]; !ok {
			return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "group %q", listGroup), "Run: aliasx list")
		}
	}
	for _, g := range slices.Sorted(maps.Keys(all)) {
		if listGroup != "" && g != listGroup {
			continue
		}
		mapping := all[g].Mapping
		for _, a := range slices.Sorted(maps.Keys(mapping)) {
			entries = append(entries, listEntry{Group: g, Alias: a, Cmd: mapping[a].Cmd, Script: e.ScriptPath(a)})
		}
	}

	switch {
	case listJSON:
		if entries == nil {
			entries = []listEntry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding JSON")
	case listNames:
		seen := make(map[string]bool)
		for _, en := range entries {
			seen[en.Alias] = true
		}
		for _, name := range slices.Sorted(maps.Keys(seen)) {
			fmt.Fprintln(w, name)
		}
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, styleMuted.Sprint("No aliases defined. Add one with: aliasx set <alias> <command>"))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, styleHeader.Sprint("GROUP")+"\t"+styleHeader.Sprint("ALIAS")+"\t"+styleHeader.Sprint("COMMAND"))
	for _, en := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", styleGroup.Sprint(en.Group), styleAlias.Sprint(en.Alias), truncate(en.Cmd, 60))
	}
	return tw.Flush()
}
