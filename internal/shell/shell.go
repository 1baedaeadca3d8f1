// Package shell maps the user's login shell to its profile file, checks alias
// commands for syntax errors and runs child shells.
package shell

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// Shell describes a supported login shell.
type Shell struct {
	// Name is the basename, e.g. "zsh".
	Name string
	// Path is the executable used to re-source the profile.
	Path string
	// Profile is the absolute path of the startup file that receives the PATH block.
	Profile string
}

// profiles maps a shell name to its startup file relative to $HOME.
// dash reads no interactive rc file of its own and shares ~/.bashrc.
var profiles = map[string]string{
	"zsh":  ".zshrc",
	"bash": ".bashrc",
	"ksh":  ".kshrc",
	"csh":  ".cshrc",
	"dash": ".bashrc",
	"tcsh": ".tcshrc",
}

// Supported reports whether name has a profile mapping.
func Supported(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names returns the supported shell names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(profiles))
}

// Detect resolves the shell from the $SHELL value, or from override when set.
// Only the basename of shellEnv is considered, so /usr/local/bin/zsh and
// /bin/zsh both map to zsh.
func Detect(shellEnv, override, home string) (Shell, error) {
	name := override
	path := override
	if name == "" {
		if shellEnv == "" {
			return Shell{}, errors.E(errors.KindUnsupportedShell, nil, "SHELL is not set")
		}
		name = filepath.Base(shellEnv)
		path = shellEnv
	} else if filepath.Base(shellEnv) == override {
		path = shellEnv
	}

	rel, ok := profiles[name]
	if !ok {
		return Shell{}, errors.E(errors.KindUnsupportedShell, nil, "unsupported shell %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	if home == "" {
		return Shell{}, errors.E(errors.KindActivation, nil, "home directory is unknown")
	}

	return Shell{Name: name, Path: path, Profile: filepath.Join(home, rel)}, nil
}

// IsCShell reports whether the shell uses csh syntax.
func (s Shell) IsCShell() bool {
	return s.Name == "csh" || s.Name == "tcsh"
}

// PathLine returns the profile line that appends dir to PATH.
func (s Shell) PathLine(dir string) string {
	if s.IsCShell() {
		return "setenv PATH ${PATH}:" + dir
	}
	return "export PATH=$PATH:" + dir
}

// SourceArgs returns the arguments that make the shell read profile and exit.
func (s Shell) SourceArgs(profile string) []string {
	switch s.Name {
	case "dash", "ksh":
		return []string{"-c", ". " + quote(profile)}
	default:
		return []string{"-c", "source " + quote(profile)}
	}
}

func quote(p string) string {
	return "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
}
