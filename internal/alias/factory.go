package alias

import (
	"os"
	"runtime"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/activation"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/paths"
	"github.com/thoreinstein/aliasx/internal/script"
	"github.com/thoreinstein/aliasx/internal/setting"
	"github.com/thoreinstein/aliasx/internal/shell"
)

// Options configures New.
type Options struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// SettingPath defaults to the XDG settings location.
	SettingPath string
	// Vars are the --define runtime variables.
	Vars map[string]string

	// GOOS selects the platform strategies; defaults to runtime.GOOS.
	GOOS string
	// Defaults are the platform global defaults; zero means setting.Defaults().
	Defaults setting.Resolved

	// ShellEnv defaults to $SHELL. Shell overrides detection.
	ShellEnv string
	Shell    string
	// Home defaults to the user's home directory.
	Home string
	// Runner re-sources the shell profile; defaults to shell.ExecRunner.
	Runner shell.Runner

	// CodePage overrides the ANSI code page for .bat scripts.
	CodePage int
	// EnvStore overrides the Windows user environment store.
	EnvStore activation.EnvStore

	// Backups snapshots files before destructive edits. Nil disables backups.
	Backups activation.BackupHook
}

// Supported reports whether goos has a generator and binder.
func Supported(goos string) bool {
	switch goos {
	case "linux", "darwin", "windows":
		return true
	default:
		return false
	}
}

// New builds an engine with the generator and binder for opts.GOOS.
func New(opts Options) (*Engine, error) {
	opts = withDefaults(opts)

	var (
		gen    script.Generator
		binder activation.Binder
	)
	switch opts.GOOS {
	case "linux", "darwin":
		gen = script.NewPosix(opts.Fs)
		binder = activation.NewProfile(opts.Fs, activation.ProfileOptions{
			ShellEnv: opts.ShellEnv,
			Override: opts.Shell,
			Home:     opts.Home,
			Runner:   opts.Runner,
			Backup:   opts.Backups,
		})
	case "windows":
		batch, err := script.NewBatch(opts.Fs, opts.CodePage)
		if err != nil {
			return nil, err
		}
		store := opts.EnvStore
		if store == nil {
			if store, err = activation.NewRegistryStore(); err != nil {
				return nil, err
			}
		}
		gen = batch
		binder = activation.NewEnv(store)
	default:
		return nil, errors.E(errors.KindUnsupportedPlatform, nil, "unsupported platform %q", opts.GOOS)
	}

	return NewWithStrategies(opts, gen, binder)
}

// NewWithStrategies builds an engine around the given generator and binder.
// It loads the settings document, creating it if missing, and resolves the
// global defaults once.
func NewWithStrategies(opts Options, gen script.Generator, binder activation.Binder) (*Engine, error) {
	opts = withDefaults(opts)

	doc, err := setting.Load(opts.Fs, opts.SettingPath, opts.Vars)
	if err != nil {
		return nil, err
	}
	resolved, err := setting.Resolve(doc.Global, opts.Defaults)
	if err != nil {
		return nil, errors.E(errors.KindConfigRead, err, "resolving script root")
	}

	return &Engine{
		fs:          opts.Fs,
		settingPath: opts.SettingPath,
		vars:        opts.Vars,
		doc:         doc,
		resolved:    resolved,
		buffer:      NewBuffer(),
		generator:   gen,
		binder:      binder,
		backups:     opts.Backups,
	}, nil
}

func withDefaults(opts Options) Options {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.SettingPath == "" {
		opts.SettingPath = paths.DefaultSettingPath()
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Defaults == (setting.Resolved{}) {
		opts.Defaults = setting.Defaults()
	}
	if opts.ShellEnv == "" {
		opts.ShellEnv = os.Getenv("SHELL")
	}
	if opts.Home == "" {
		opts.Home = paths.Home()
	}
	if opts.Runner == nil {
		opts.Runner = shell.ExecRunner{}
	}
	return opts
}
