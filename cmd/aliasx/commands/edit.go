package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/alias"
	"github.com/thoreinstein/aliasx/internal/editor"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/setting"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

// newEditor builds the editor; tests replace it.
var newEditor = func(cmd *cobra.Command) *editor.Editor {
	return editor.New(cmd.OutOrStdout())
}

var editNoRebuild bool

func init() {
	editCmd.Flags().BoolVar(&editNoRebuild, "no-rebuild", false, "do not rebuild scripts after editing")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings file in $EDITOR",
	Long: `Open the alias settings file in your editor, then rebuild every script
from the saved file.

Uses $EDITOR, then $VISUAL, then nano or vi (notepad on Windows). If the
saved file does not parse, nothing is rebuilt and the parse error is
reported with its position.`,
	Example: `  aliasx edit
  EDITOR="code --wait" aliasx edit

  See Also: aliasx rebuild, aliasx doctor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := engineOptions()
		if err != nil {
			return err
		}
		// The file is only parsed after editing so a broken one can be fixed.
		exists, err := fileutil.Exists(opts.Fs, opts.SettingPath)
		if err != nil {
			return errors.E(errors.KindConfigRead, err, "checking settings file %s", opts.SettingPath)
		}
		if !exists {
			if err := setting.Persist(opts.Fs, opts.SettingPath, setting.NewDocument()); err != nil {
				return err
			}
		}
		if err := newEditor(cmd).Open(cmd.Context(), opts.SettingPath); err != nil {
			return err
		}
		if editNoRebuild {
			_, err := setting.Load(opts.Fs, opts.SettingPath, opts.Vars)
			return err
		}

		e, err := alias.New(opts)
		if err != nil {
			return err
		}
		if err := e.Rebuild(cmd.Context()); err != nil {
			return err
		}
		printf(cmd, "rebuilt %d script(s)\n", len(e.List()))
		return nil
	},
}
