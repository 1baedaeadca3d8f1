package activation

import (
	"context"
	"strings"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/logging"
	"github.com/thoreinstein/aliasx/internal/setting"
)

// PathVar is the user environment variable holding the search path.
const PathVar = "Path"

// EnvStore reads and writes user-scoped environment variables.
type EnvStore interface {
	// Get returns the raw, unexpanded value and whether it exists.
	Get(name string) (string, bool, error)
	Set(name, value string) error
	// Broadcast tells running programs that the environment changed.
	Broadcast() error
}

// Env binds activation through user environment variables.
type Env struct {
	store EnvStore
}

// NewEnv returns an Env binder over store.
func NewEnv(store EnvStore) *Env {
	return &Env{store: store}
}

// Describe implements Binder.
func (e *Env) Describe() string {
	return `HKCU\Environment`
}

// Bind implements Binder. It sets the script root variable when it differs and
// appends %VAR% to Path when absent. Existing Path entries are never removed.
func (e *Env) Bind(ctx context.Context, resolved setting.Resolved) error {
	logger := logging.FromContext(ctx)
	name := resolved.ScriptRootEnvVarName
	changed := false

	cur, ok, err := e.store.Get(name)
	if err != nil {
		return errors.E(errors.KindActivation, err, "reading %s", name)
	}
	if !ok || cur != resolved.ScriptRoot {
		if err := e.store.Set(name, resolved.ScriptRoot); err != nil {
			return errors.E(errors.KindActivation, err, "setting %s", name)
		}
		logger.Info("set user environment variable", "name", name, "value", resolved.ScriptRoot)
		changed = true
	}

	path, ok, err := e.store.Get(PathVar)
	if err != nil {
		return errors.E(errors.KindActivation, err, "reading %s", PathVar)
	}
	entry := PathEntry(name)
	if !ok || path == "" {
		if err := e.store.Set(PathVar, entry); err != nil {
			return errors.E(errors.KindActivation, err, "setting %s", PathVar)
		}
		changed = true
	} else if !containsEntry(path, entry) {
		if err := e.store.Set(PathVar, strings.TrimRight(path, ";")+";"+entry); err != nil {
			return errors.E(errors.KindActivation, err, "updating %s", PathVar)
		}
		changed = true
	}

	if changed {
		if err := e.store.Broadcast(); err != nil {
			logger.Warn("environment change broadcast failed; sign out or open a new terminal", "error", err)
		}
	}
	return nil
}

// Active implements Binder.
func (e *Env) Active(_ context.Context, resolved setting.Resolved) (bool, error) {
	cur, ok, err := e.store.Get(resolved.ScriptRootEnvVarName)
	if err != nil {
		return false, errors.E(errors.KindActivation, err, "reading %s", resolved.ScriptRootEnvVarName)
	}
	if !ok || cur != resolved.ScriptRoot {
		return false, nil
	}
	path, _, err := e.store.Get(PathVar)
	if err != nil {
		return false, errors.E(errors.KindActivation, err, "reading %s", PathVar)
	}
	return containsEntry(path, PathEntry(resolved.ScriptRootEnvVarName)), nil
}

// PathEntry returns the %NAME% reference added to Path.
func PathEntry(name string) string {
	return "%" + name + "%"
}

// containsEntry reports whether the ;-separated list holds entry, ignoring case.
func containsEntry(list, entry string) bool {
	for _, e := range strings.Split(list, ";") {
		if strings.EqualFold(strings.TrimSpace(e), entry) {
			return true
		}
	}
	return false
}
