package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/alias"
)

var exportForce bool

func init() {
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write all aliases to a file",
	Long: `Write the whole settings document to path.

The format follows the extension: .yaml or .yml writes YAML, anything else
TOML. Runtime variables are already substituted in the exported text.`,
	Example: `  aliasx export ~/aliases.toml
  aliasx export ~/aliases.yaml --force

  See Also: aliasx import`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		if err := e.Export(args[0], exportForce); err != nil {
			return err
		}
		printf(cmd, "exported %d alias(es) to %s (%s)\n", e.Document().Len(), args[0], alias.FormatFor(args[0]))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace all aliases with the contents of a file",
	Long: `Replace the settings document with the one at path and rebuild every
script. TOML and YAML are accepted, chosen by extension. {{key}}
placeholders in the file are substituted from --define.

The current settings file is backed up first when backups are enabled.`,
	Example: `  aliasx import ~/aliases.toml
  aliasx -d host=prod.example.com import team-aliases.yaml

  See Also: aliasx export, aliasx backup restore`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		if err := e.Import(cmd.Context(), args[0]); err != nil {
			return err
		}
		printf(cmd, "imported %d alias(es) from %s\n", e.Document().Len(), args[0])
		return nil
	},
}
