package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/logging"
	"github.com/thoreinstein/aliasx/internal/paths"
	"github.com/thoreinstein/aliasx/internal/setting"
	"github.com/thoreinstein/aliasx/internal/shell"
)

var setGroup string

func init() {
	setCmd.Flags().StringVarP(&setGroup, "group", "g", setting.DefaultGroup,
		"group the alias belongs to")
	// Everything after the alias name is the command, including its flags.
	setCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set [flags] <alias> <command>...",
	Short: "Create or replace an alias",
	Long: `Create or replace an alias and commit it immediately.

The remaining arguments are joined with spaces to form the command. Quote
the command to keep pipes and redirections away from your current shell.
Flags must come before the alias name.

The command is parsed with your shell's grammar first; a syntax error is
reported as a warning but the alias is still saved.`,
	Example: `  # Simple alias
  aliasx set ll ls -la

  # Pipes need quoting
  aliasx set errs 'grep -rn error . | less'

  # Put the alias in a group
  aliasx set -g work deploy make deploy

  See Also: aliasx list, aliasx remove`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	command := strings.Join(args[1:], " ")

	if goos != "windows" {
		if err := shell.ValidateCommand(command, validationShell()); err != nil {
			logging.FromContext(ctx).Warn("command may not run as expected", "alias", name, "error", err)
		}
	}

	e, err := newEngine()
	if err != nil {
		return err
	}
	if err := e.Set(setGroup, name, setting.Alias{Cmd: command}); err != nil {
		return err
	}
	if err := e.Commit(ctx); err != nil {
		return err
	}

	printf(cmd, "%s %s (%s) -> %s\n", styleAlias.Sprint("set"), name, setGroup, command)
	return nil
}

// validationShell names the grammar commands are checked against: the
// configured shell, else $SHELL, else bash.
func validationShell() string {
	sh, err := shell.Detect(os.Getenv("SHELL"), currentConfig().Shell, paths.Home())
	if err != nil {
		return ""
	}
	return sh.Name
}
