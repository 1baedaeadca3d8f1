package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/setting"
)

const (
	scriptPerm os.FileMode = 0o755
	dirPerm    os.FileMode = 0o755
)

// PermissionCheck validates the permissions of the settings file, the script
// root and the scripts in it. Unix permissions are not checked on Windows.
type PermissionCheck struct {
	engine Engine
	goos   string

	fixes []permFix
}

type permFix struct {
	path string
	perm os.FileMode
}

var (
	_ Check = (*PermissionCheck)(nil)
	_ Fixer = (*PermissionCheck)(nil)
)

// NewPermissionCheck creates a permission check for the host OS.
func NewPermissionCheck(engine Engine) *PermissionCheck {
	return &PermissionCheck{engine: engine, goos: runtime.GOOS}
}

// Name returns the unique identifier for this check.
func (c *PermissionCheck) Name() string {
	return "permissions"
}

// Category returns the grouping for this check.
func (c *PermissionCheck) Category() string {
	return "filesystem"
}

// Run executes the permission check.
func (c *PermissionCheck) Run(_ context.Context) *CheckResult {
	c.fixes = nil

	if c.goos == "windows" {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "file permissions are not checked on windows",
		}
	}

	fsys := c.engine.Fs()
	var issues []issue
	checked := 0

	settingPath := c.engine.SettingPath()
	if info, err := fsys.Stat(settingPath); err == nil {
		checked++
		if info.Mode().Perm()&0o002 != 0 {
			issues = append(issues, c.fixable(settingPath, setting.FilePerm, "settings file is world-writable"))
		}
	}

	root := c.engine.ScriptRoot()
	info, err := fsys.Stat(root)
	switch {
	case os.IsNotExist(err):
		return buildResult(c, issues, checked,
			fmt.Sprintf("all %d path(s) have valid permissions", checked),
			fmt.Sprintf("found %d permission issue(s)", len(issues)))
	case err != nil:
		issues = append(issues, issue{Path: root, Problem: fmt.Sprintf("cannot stat script root: %v", err), Severity: SeverityError})
		return buildResult(c, issues, checked, "", fmt.Sprintf("found %d permission issue(s)", len(issues)))
	case !info.IsDir():
		issues = append(issues, issue{Path: root, Problem: "script root is not a directory", Severity: SeverityError})
		return buildResult(c, issues, checked, "", fmt.Sprintf("found %d permission issue(s)", len(issues)))
	}

	checked++
	if !writable(fsys, root) {
		issues = append(issues, issue{
			Path:     root,
			Problem:  "script root is not writable",
			Severity: SeverityError,
			FixHint:  "chmod u+w " + root,
		})
	}
	if info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, c.fixable(root, dirPerm, "script root is world-writable"))
	}

	ext := c.engine.Generator().Ext()
	infos, err := afero.ReadDir(fsys, root)
	if err != nil {
		issues = append(issues, issue{Path: root, Problem: fmt.Sprintf("cannot read script root: %v", err), Severity: SeverityError})
	}
	for _, fi := range infos {
		if fi.IsDir() || !strings.HasSuffix(fi.Name(), ext) {
			continue
		}
		checked++
		path := filepath.Join(root, fi.Name())
		perm := fi.Mode().Perm()
		switch {
		case perm&0o100 == 0:
			issues = append(issues, c.fixable(path, scriptPerm, "script is not executable"))
		case perm&0o002 != 0:
			issues = append(issues, c.fixable(path, scriptPerm, "script is world-writable"))
		}
	}

	return buildResult(c, issues, checked,
		fmt.Sprintf("all %d path(s) have valid permissions", checked),
		fmt.Sprintf("found %d permission issue(s)", len(issues)))
}

func (c *PermissionCheck) fixable(path string, perm os.FileMode, problem string) issue {
	c.fixes = append(c.fixes, permFix{path: path, perm: perm})
	return issue{
		Path:     path,
		Problem:  problem,
		Severity: SeverityWarning,
		Fixable:  true,
		FixHint:  fmt.Sprintf("chmod %04o %s", perm, path),
	}
}

// CanFix returns true if there are any fixable permission issues.
func (c *PermissionCheck) CanFix() bool {
	return len(c.fixes) > 0
}

// Fix applies the target permission to every fixable path.
func (c *PermissionCheck) Fix(_ context.Context) []FixResult {
	results := make([]FixResult, 0, len(c.fixes))
	for _, f := range c.fixes {
		r := FixResult{Check: c.Name(), Path: f.path}
		if err := c.engine.Fs().Chmod(f.path, f.perm); err != nil {
			r.Description = fmt.Sprintf("failed to chmod %04o", f.perm)
			r.Error = errors.Wrapf(err, "chmod %04o %s", f.perm, f.path)
		} else {
			r.Fixed = true
			r.Description = fmt.Sprintf("chmod %04o", f.perm)
		}
		results = append(results, r)
	}
	c.fixes = nil
	return results
}

// writable tests a directory by creating a temp file in it.
func writable(fsys afero.Fs, dir string) bool {
	f, err := afero.TempFile(fsys, dir, ".aliasx-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = fsys.Remove(name)
	return true
}
