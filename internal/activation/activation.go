// Package activation makes the script root reachable from new shell sessions.
//
// On POSIX systems the Profile binder appends a marked PATH block to the
// user's shell startup file. On Windows the Env binder points a user
// environment variable at the script root and adds %VAR% to the user Path.
//
// Activation never affects the shell that invoked aliasx. A child process
// cannot change its parent's environment, so the change is picked up by the
// next session.
package activation

import (
	"context"

	"github.com/thoreinstein/aliasx/internal/setting"
)

// Binder wires the script root into the user's environment.
type Binder interface {
	// Bind makes resolved.ScriptRoot reachable. It is idempotent.
	Bind(ctx context.Context, resolved setting.Resolved) error
	// Active reports whether Bind has already taken effect.
	Active(ctx context.Context, resolved setting.Resolved) (bool, error)
	// Describe names what Bind edits, e.g. a profile path or "HKCU\Environment".
	Describe() string
}

// BackupHook snapshots files before they are first edited in a session.
type BackupHook interface {
	EnsureBackedUp(scope string, files ...string) error
}
