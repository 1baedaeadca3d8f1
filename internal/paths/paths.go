package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under each XDG base directory.
const AppName = "aliasx"

// Default file and environment names.
const (
	SettingFileName = "alias-setting.toml"
	ConfigFileName  = "config.yaml"

	// DefaultScriptRootEnvVar is the user environment variable that points at the
	// script root on Windows.
	DefaultScriptRootEnvVar = "ALIASX_SCRIPT_ROOT"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// AppConfigDir returns <ConfigHome>/aliasx.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DefaultSettingPath returns the settings document location used when neither
// --setting nor the setting_path config key is given.
func DefaultSettingPath() string {
	return filepath.Join(AppConfigDir(), SettingFileName)
}

// DefaultConfigPath returns the tool configuration file location.
func DefaultConfigPath() string {
	return filepath.Join(AppConfigDir(), ConfigFileName)
}

// DefaultScriptRoot returns <DataHome>/aliasx/script.
func DefaultScriptRoot() string {
	return filepath.Join(DataHome(), AppName, "script")
}

// BackupDir returns <ConfigHome>/aliasx/backups.
func BackupDir() string {
	return filepath.Join(AppConfigDir(), "backups")
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths of the form "~user" are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return "", errors.Wrap(ErrInvalidPath, "empty path")
	}
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
