// Package config provides configuration management for aliasx using Viper.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/paths"
)

// EnvPrefix prefixes every environment override, e.g. ALIASX_SHELL.
const EnvPrefix = "ALIASX"

// Config keys.
const (
	KeyVersion         = "version"
	KeySettingPath     = "setting_path"
	KeyShell           = "shell"
	KeyCodePage        = "code_page"
	KeyClearPurge      = "clear.purge"
	KeyBackupEnabled   = "backup.enabled"
	KeyBackupRetention = "backup.retention"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// SettingPath overrides the settings document location.
	SettingPath string `mapstructure:"setting_path" yaml:"setting_path,omitempty"`

	// Shell overrides $SHELL detection for profile activation.
	Shell string `mapstructure:"shell" yaml:"shell,omitempty"`

	// CodePage overrides the detected ANSI code page for .bat scripts.
	CodePage int `mapstructure:"code_page" yaml:"code_page,omitempty"`

	Clear  ClearConfig  `mapstructure:"clear" yaml:"clear"`
	Backup BackupConfig `mapstructure:"backup" yaml:"backup"`
}

// ClearConfig controls the clear command.
type ClearConfig struct {
	// Purge makes clear delete generated scripts as well.
	Purge bool `mapstructure:"purge" yaml:"purge"`
}

// BackupConfig controls snapshots taken before destructive edits.
type BackupConfig struct {
	Enabled   bool `mapstructure:"enabled" yaml:"enabled"`
	Retention int  `mapstructure:"retention" yaml:"retention"`
}

// Init resets Viper and installs defaults, search paths and env binding.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(paths.AppConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, 1)
	viper.SetDefault(KeySettingPath, "")
	viper.SetDefault(KeyShell, "")
	viper.SetDefault(KeyCodePage, 0)
	viper.SetDefault(KeyClearPurge, false)
	viper.SetDefault(KeyBackupEnabled, true)
	viper.SetDefault(KeyBackupRetention, 5)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		}
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or env override exists.
func Default() *Config {
	return &Config{
		Version: 1,
		Backup:  BackupConfig{Enabled: true, Retention: 5},
	}
}

// ResolveSettingPath picks the settings document location: the explicit flag
// value, then the config value, then the XDG default.
func (c *Config) ResolveSettingPath(flag string) (string, error) {
	p := flag
	if p == "" && c != nil {
		p = c.SettingPath
	}
	if p == "" {
		return paths.DefaultSettingPath(), nil
	}
	return paths.ExpandHome(p)
}
