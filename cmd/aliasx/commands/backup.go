package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/backup"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/paths"
	"github.com/thoreinstein/aliasx/internal/shell"
)

var (
	backupScope    string
	backupListJSON bool
)

func init() {
	backupCmd.PersistentFlags().StringVar(&backupScope, "scope", backup.ScopeSettings,
		"what to back up or restore: settings, profile")
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "output in JSON format")
	backupCmd.AddCommand(backupListCmd, backupCreateCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups of the settings file and shell profile",
	Long: `Snapshots of the settings file are taken before clear and import, and
of the shell profile before activation first edits it. Only the newest
backups are kept (backup.retention in config.yaml).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		switch backupScope {
		case backup.ScopeSettings, backup.ScopeProfile:
			return nil
		default:
			return errors.NewUserError(errors.Newf("unknown scope %q", backupScope), "use --scope settings or --scope profile")
		}
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long:  `List the backups of one scope, most recent first.`,
	Example: `  aliasx backup list
  aliasx backup list --scope profile --json

  See Also:
    aliasx backup restore - Restore from a backup
    aliasx backup create  - Create a new backup`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBackupList(cmd.OutOrStdout(), newBackupManager())
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Back up the settings file or shell profile now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		files, err := scopeFiles(backupScope)
		if err != nil {
			return err
		}
		m, err := newBackupManager().Backup(backupScope, files)
		if err != nil {
			if errors.Is(err, backup.ErrNothingToBackUp) {
				return errors.NewUserError(err, "nothing exists yet at "+files[0])
			}
			return errors.Wrap(err, "creating backup")
		}
		printf(cmd, "created %s backup %s (%d file(s))\n", backupScope, m.ID, len(m.Files))
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore from a backup",
	Long: `Restore the files of a backup to their original locations.

If no backup ID is provided, restores from the most recent backup of the
scope. Every stored file is verified against its recorded hash before
anything is written. Restoring the settings file does not touch scripts;
run aliasx rebuild afterwards.`,
	Example: `  # Restore the most recent settings backup
  aliasx backup restore

  # Restore a specific profile backup
  aliasx backup restore 20260123T100712 --scope profile

  See Also:
    aliasx backup list - List available backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return runBackupRestore(cmd.OutOrStdout(), newBackupManager(), id)
	},
}

// backupInfoOutput represents a single backup in JSON output.
type backupInfoOutput struct {
	ID          string    `json:"id"`
	Scope       string    `json:"scope"`
	CreatedAt   time.Time `json:"created_at"`
	FileCount   int       `json:"file_count"`
	ToolVersion string    `json:"tool_version"`
}

func runBackupList(w io.Writer, mgr *backup.Manager) error {
	manifests, err := mgr.List(backupScope)
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.Wrapf(err, "listing %s backups", backupScope)
	}

	if backupListJSON {
		out := make([]backupInfoOutput, len(manifests))
		for i, m := range manifests {
			out[i] = backupInfoOutput{
				ID:          m.ID,
				Scope:       m.Scope,
				CreatedAt:   m.CreatedAt,
				FileCount:   len(m.Files),
				ToolVersion: m.ToolVersion,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(manifests) == 0 {
		fmt.Fprintf(w, "No %s backups available\n", backupScope)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Backups are created automatically before aliasx rewrites files.")
		fmt.Fprintln(w, "You can also create one with: aliasx backup create")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, styleHeader.Sprint("ID")+"\t"+styleHeader.Sprint("CREATED")+"\t"+styleHeader.Sprint("FILES")+"\t"+styleHeader.Sprint("VERSION"))
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04:05"), len(m.Files), m.ToolVersion)
	}
	return tw.Flush()
}

func runBackupRestore(w io.Writer, mgr *backup.Manager, id string) error {
	if id == "" {
		manifests, err := mgr.List(backupScope)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(errors.Wrapf(err, "scope %s", backupScope), "Run: aliasx backup list")
			}
			return errors.Wrap(err, "listing backups")
		}
		id = manifests[0].ID
		fmt.Fprintf(w, "Using most recent backup: %s\n", id)
	}

	manifest, err := mgr.Restore(backupScope, id)
	if err != nil {
		return errors.Wrapf(err, "restoring backup %s", id)
	}

	for _, f := range manifest.Files {
		fmt.Fprintf(w, "  restored %s\n", f.OriginalPath)
	}
	fmt.Fprintf(w, "%s %s from backup %s\n", styleAlias.Sprint("✓ Restored"), backupScope, id)
	if backupScope == backup.ScopeSettings {
		fmt.Fprintln(w, "Run aliasx rebuild to regenerate scripts from the restored settings.")
	}
	return nil
}

// scopeFiles returns the files a scope covers on this host.
func scopeFiles(scope string) ([]string, error) {
	if scope == backup.ScopeSettings {
		p, err := settingPath()
		if err != nil {
			return nil, err
		}
		return []string{p}, nil
	}

	if goos == "windows" {
		return nil, errors.NewUserError(errors.New("there is no shell profile on windows"), "use --scope settings")
	}
	home := homeDir
	if home == "" {
		home = paths.Home()
	}
	sh, err := shell.Detect(os.Getenv("SHELL"), currentConfig().Shell, home)
	if err != nil {
		return nil, err
	}
	return []string{sh.Profile}, nil
}
