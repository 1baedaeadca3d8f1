// Package commands implements the CLI commands for aliasx.
package commands

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/activation"
	"github.com/thoreinstein/aliasx/internal/alias"
	"github.com/thoreinstein/aliasx/internal/backup"
	"github.com/thoreinstein/aliasx/internal/config"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/logging"
	"github.com/thoreinstein/aliasx/internal/setting"
	"github.com/thoreinstein/aliasx/internal/shell"
)

// defines holds the repeatable --define key=value flag.
var defines []string

// settingFlag holds the value of the --setting flag.
var settingFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// Process-wide state filled in by PersistentPreRunE.
var (
	cfg           *config.Config
	configLoadErr error
	runtimeVars   map[string]string
)

// Dependencies swapped out by tests.
var (
	appFs    afero.Fs = afero.NewOsFs()
	goos              = runtime.GOOS
	homeDir  string
	runner   shell.Runner = shell.ExecRunner{}
	envStore activation.EnvStore
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringArrayVarP(&defines, "define", "d", nil,
		"runtime variable substituted for {{key}} in the settings file (key=value, repeatable)")
	rootCmd.PersistentFlags().StringVar(&settingFlag, "setting", "",
		"path to the alias settings file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = Version
	backup.Version = Version
	rootCmd.SetVersionTemplate("aliasx version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "aliasx",
	Short: "Persistent cross-platform shell aliases",
	Long: `aliasx stores shell aliases in a TOML settings file and turns each one
into a small executable script in a directory that is put on PATH.

Changes are buffered and committed together: the settings file is written
first, then the affected scripts, then activation (a marked PATH block in
your shell profile, or the user Path variable on Windows).

Activation never affects the shell you run aliasx from. Open a new shell
session to pick up new aliases the first time.`,
	Example: `  # Add an alias and use it from a new shell
  aliasx set ll ls -la

  # Group aliases
  aliasx set --group work deploy make deploy

  # Substitute {{env}} placeholders in the settings file
  aliasx -d env=prod list

  # Regenerate every script from the settings file
  aliasx rebuild

  See Also: aliasx doctor, aliasx config`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return preflight(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("ALIASX_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	handlers := []slog.Handler{logging.NewFormatHandler(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	})}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, logging.NewFormatHandler(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: f,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// preflight fails fast on an unsupported platform, a broken tool config or a
// malformed --define before any command touches the settings file.
func preflight(cmd *cobra.Command, _ []string) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "gen-doc" {
		return nil
	}

	if !alias.Supported(goos) {
		return errors.E(errors.KindUnsupportedPlatform, nil, "unsupported platform %q", goos)
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	vars, err := setting.ParseRuntimeVariables(defines)
	if err != nil {
		return err
	}
	runtimeVars = vars
	return nil
}

// currentConfig returns the loaded tool config or the defaults.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// settingPath resolves --setting, then the config file, then the default.
func settingPath() (string, error) {
	p, err := currentConfig().ResolveSettingPath(settingFlag)
	if err != nil {
		return "", errors.NewUserError(err, "check --setting or setting_path in config.yaml")
	}
	return p, nil
}

// newBackupManager builds the backup manager from the tool config.
func newBackupManager() *backup.Manager {
	c := currentConfig()
	return backup.NewManager(
		backup.WithFs(appFs),
		backup.WithRetentionCount(c.Backup.Retention),
		backup.WithDisabled(!c.Backup.Enabled),
	)
}

// engineOptions assembles alias.Options from flags, config and test hooks.
func engineOptions() (alias.Options, error) {
	path, err := settingPath()
	if err != nil {
		return alias.Options{}, err
	}
	c := currentConfig()
	return alias.Options{
		Fs:          appFs,
		SettingPath: path,
		Vars:        runtimeVars,
		GOOS:        goos,
		Shell:       c.Shell,
		Home:        homeDir,
		Runner:      runner,
		CodePage:    c.CodePage,
		EnvStore:    envStore,
		Backups:     newBackupManager(),
	}, nil
}

// newEngine loads the settings file and builds the engine for this platform.
func newEngine() (*alias.Engine, error) {
	opts, err := engineOptions()
	if err != nil {
		return nil, err
	}
	return alias.New(opts)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
