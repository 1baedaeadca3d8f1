package commands

import (
	"github.com/spf13/cobra"
)

var clearPurge bool

func init() {
	clearCmd.Flags().BoolVar(&clearPurge, "purge", false,
		"also delete the generated scripts (default from clear.purge in config.yaml)")
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every alias from the settings file",
	Long: `Empty the alias map of the settings file immediately.

By default the generated scripts stay on disk and keep working until they
are removed; aliasx doctor reports them as orphans and doctor --fix deletes
them. With --purge (or clear.purge: true in config.yaml) the script of every
alias that was defined is deleted as well.

The settings file is backed up first when backups are enabled.`,
	Example: `  # Forget all aliases, keep scripts
  aliasx clear

  # Forget all aliases and delete their scripts
  aliasx clear --purge

  See Also: aliasx backup restore, aliasx doctor`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := newEngine()
	if err != nil {
		return err
	}

	n := len(e.List())
	purge := clearPurge || currentConfig().Clear.Purge
	if purge {
		if err := e.Purge(ctx); err != nil {
			return err
		}
		printf(cmd, "cleared %d alias(es) and deleted their scripts\n", n)
		return nil
	}

	if err := e.Clear(ctx); err != nil {
		return err
	}
	printf(cmd, "cleared %d alias(es); scripts in %s were kept\n", n, e.ScriptRoot())
	return nil
}
