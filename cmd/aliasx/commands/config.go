package commands

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/aliasx/internal/config"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/paths"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

// configKeys lists every key config get/set accepts.
var configKeys = []string{
	config.KeyVersion,
	config.KeySettingPath,
	config.KeyShell,
	config.KeyCodePage,
	config.KeyClearPurge,
	config.KeyBackupEnabled,
	config.KeyBackupRetention,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage aliasx configuration",
	Long: `Manage aliasx configuration stored in ~/.config/aliasx/config.yaml.

This is the tool's own configuration, not the alias settings file. Every key
can also be set from the environment, e.g. ALIASX_SHELL or
ALIASX_BACKUP_RETENTION.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  aliasx config

  # Keep the settings file somewhere else
  aliasx config set setting_path ~/dotfiles/alias-setting.toml

  # Make clear remove scripts too
  aliasx config set clear.purge true

See Also: aliasx doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key. Nested keys use dot notation.

Keys: ` + strings.Join(configKeys, ", "),
	Example: `  aliasx config get backup.retention

See Also: aliasx config set, aliasx config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write config.yaml.

The whole configuration is validated before anything is written, so an
unknown shell or code page is rejected.`,
	Example: `  aliasx config set shell zsh
  aliasx config set code_page 932
  aliasx config set backup.enabled false

See Also: aliasx config get, aliasx config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open config.yaml in your default editor, creating it with the current
values when it does not exist yet.`,
	Example: `  EDITOR=nano aliasx config edit

See Also: aliasx config list, aliasx edit`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !slices.Contains(configKeys, key) {
		return unknownKeyError(key)
	}
	if !viper.IsSet(key) {
		printf(cmd, "not set\n")
		return nil
	}
	printf(cmd, "%s\n", viper.GetString(key))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]
	if !slices.Contains(configKeys, key) {
		return unknownKeyError(key)
	}

	value, err := parseConfigValue(key, raw)
	if err != nil {
		return errors.NewUserError(err, "check the value for "+key)
	}
	viper.Set(key, value)

	var next config.Config
	if err := viper.Unmarshal(&next); err != nil {
		return errors.Wrap(err, "unmarshaling config")
	}
	if errs := config.Validate(&next); len(errs) > 0 {
		return errors.NewUserError(errors.Wrap(errs[0], "validating config"), "")
	}

	if err := writeConfig(&next); err != nil {
		return err
	}
	cfg = &next
	printf(cmd, "Set %s = %v\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(currentConfig())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	printf(cmd, "%s", data)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configPath()
	exists, err := fileutil.Exists(appFs, path)
	if err != nil {
		return errors.Wrap(err, "checking config file")
	}
	if !exists {
		if err := writeConfig(currentConfig()); err != nil {
			return err
		}
	}
	return newEditor(cmd).Open(cmd.Context(), path)
}

// parseConfigValue converts raw to the type stored under key.
func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case config.KeyVersion, config.KeyCodePage, config.KeyBackupRetention:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Newf("%s must be an integer, got %q", key, raw)
		}
		return n, nil
	case config.KeyClearPurge, config.KeyBackupEnabled:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Newf("%s must be true or false, got %q", key, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}

func unknownKeyError(key string) error {
	return errors.NewUserError(
		errors.Newf("unknown config key %q", key),
		"valid keys: "+strings.Join(configKeys, ", "),
	)
}

// configPath is where config set and config edit write.
func configPath() string {
	if dir := os.Getenv(config.EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return paths.DefaultConfigPath()
}

func writeConfig(c *config.Config) error {
	path := configPath()
	if err := appFs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(appFs, path, c, 0o644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
