package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/alias"
	"github.com/thoreinstein/aliasx/internal/paths"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(activateCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild [setting-path]",
	Short: "Regenerate every script from the settings file",
	Long: `Regenerate the script of every alias and re-apply activation.

Use this after editing the settings file by hand or when the script
directory has drifted. An optional path rebuilds from that settings file
instead of the configured one.`,
	Example: `  aliasx rebuild
  aliasx rebuild ~/dotfiles/alias-setting.toml

  See Also: aliasx doctor, aliasx edit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := engineOptions()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			if opts.SettingPath, err = paths.ExpandHome(args[0]); err != nil {
				return err
			}
		}
		e, err := alias.New(opts)
		if err != nil {
			return err
		}
		if err := e.Rebuild(cmd.Context()); err != nil {
			return err
		}
		printf(cmd, "rebuilt %d script(s) in %s\n", len(e.List()), e.ScriptRoot())
		return nil
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Put the script directory on PATH",
	Long: `Make the script directory reachable from new shell sessions.

On Linux and macOS a marked block is added to your shell profile. On
Windows the user environment gets a variable pointing at the script
directory and %VAR% is appended to the user Path. Every commit does this
too; run it directly after changing shells.

The shell you run aliasx from is not changed. Open a new session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		if err := e.Activate(cmd.Context()); err != nil {
			return err
		}
		printf(cmd, "activated via %s; open a new shell session to use your aliases\n", e.Binder().Describe())
		return nil
	},
}
