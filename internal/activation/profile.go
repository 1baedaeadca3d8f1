package activation

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/backup"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/logging"
	"github.com/thoreinstein/aliasx/internal/setting"
	"github.com/thoreinstein/aliasx/internal/shell"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

// Profile block markers.
const (
	StartMarker = "# aliasx :: start"
	EndMarker   = "# aliasx :: end"
)

// ProfileOptions configures a Profile binder.
type ProfileOptions struct {
	// ShellEnv is the value of $SHELL.
	ShellEnv string
	// Override replaces $SHELL detection when non-empty.
	Override string
	// Home is the user's home directory.
	Home string
	// Runner re-sources the profile. Nil skips re-sourcing.
	Runner shell.Runner
	// Backup is called before the profile is first modified. May be nil.
	Backup BackupHook
}

// Profile binds activation through a shell startup file.
type Profile struct {
	fs   afero.Fs
	opts ProfileOptions
}

// NewProfile returns a Profile binder. The shell is detected lazily so that
// read-only commands work under an unsupported shell.
func NewProfile(fsys afero.Fs, opts ProfileOptions) *Profile {
	return &Profile{fs: fsys, opts: opts}
}

// Shell resolves the target shell.
func (p *Profile) Shell() (shell.Shell, error) {
	return shell.Detect(p.opts.ShellEnv, p.opts.Override, p.opts.Home)
}

// Describe implements Binder.
func (p *Profile) Describe() string {
	sh, err := p.Shell()
	if err != nil {
		return "shell profile"
	}
	return sh.Profile
}

// Block returns the marked PATH block for root.
func Block(sh shell.Shell, root string) string {
	return StartMarker + "\n" + sh.PathLine(root) + "\n" + EndMarker
}

// Bind implements Binder. It appends the PATH block when the exact block is
// missing, replacing an older aliasx block for a different root, then
// re-sources the profile in a child shell. A re-source failure is logged only.
func (p *Profile) Bind(ctx context.Context, resolved setting.Resolved) error {
	logger := logging.FromContext(ctx)

	sh, err := p.Shell()
	if err != nil {
		return err
	}

	content, err := p.read(sh.Profile)
	if err != nil {
		return err
	}

	block := Block(sh, resolved.ScriptRoot)
	if strings.Contains(content, block) {
		logger.Debug("profile already activated", "profile", sh.Profile)
		return nil
	}

	if p.opts.Backup != nil {
		if err := p.opts.Backup.EnsureBackedUp(backup.ScopeProfile, sh.Profile); err != nil {
			return errors.E(errors.KindActivation, err, "backing up %s", sh.Profile)
		}
	}

	updated, replaced := replaceBlock(content, block)
	switch {
	case replaced:
	case content == "":
		updated = block + "\n"
	default:
		updated = content + "\n\n" + block + "\n"
	}
	if err := fileutil.WriteFileAll(p.fs, sh.Profile, []byte(updated), p.mode(sh.Profile)); err != nil {
		return errors.E(errors.KindActivation, err, "writing %s", sh.Profile)
	}
	logger.Info("activated script root", "profile", sh.Profile, "root", resolved.ScriptRoot, "replaced", replaced)

	p.resource(ctx, sh)
	return nil
}

// Active implements Binder.
func (p *Profile) Active(_ context.Context, resolved setting.Resolved) (bool, error) {
	sh, err := p.Shell()
	if err != nil {
		return false, err
	}
	content, err := p.read(sh.Profile)
	if err != nil {
		return false, err
	}
	return strings.Contains(content, Block(sh, resolved.ScriptRoot)), nil
}

func (p *Profile) read(path string) (string, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.E(errors.KindActivation, err, "reading %s", path)
	}
	return string(data), nil
}

func (p *Profile) mode(path string) os.FileMode {
	if info, err := p.fs.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

func (p *Profile) resource(ctx context.Context, sh shell.Shell) {
	if p.opts.Runner == nil {
		return
	}
	logger := logging.FromContext(ctx)
	out, err := p.opts.Runner.Run(ctx, sh.Path, sh.SourceArgs(sh.Profile)...)
	if len(out) > 0 {
		logger.Log(ctx, logging.LevelTrace, "re-source output", "output", string(out))
	}
	if err != nil {
		logger.Warn("could not re-source profile; open a new shell to pick up aliases",
			"profile", sh.Profile, "error", err)
	}
}

// replaceBlock swaps the first marked block in content for block.
func replaceBlock(content, block string) (string, bool) {
	start := strings.Index(content, StartMarker)
	if start < 0 {
		return content, false
	}
	rel := strings.Index(content[start:], EndMarker)
	if rel < 0 {
		return content, false
	}
	end := start + rel + len(EndMarker)
	return content[:start] + block + content[end:], true
}
