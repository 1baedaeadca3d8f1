package setting

import (
	"github.com/thoreinstein/aliasx/internal/paths"
)

// Resolved holds global values with platform defaults applied. It is computed
// once per process and never persisted.
type Resolved struct {
	ScriptRoot           string
	ScriptRootEnvVarName string
}

// Defaults returns the platform default globals.
func Defaults() Resolved {
	return Resolved{
		ScriptRoot:           paths.DefaultScriptRoot(),
		ScriptRootEnvVarName: paths.DefaultScriptRootEnvVar,
	}
}

// Resolve fills values absent from global with defaults and expands a leading ~.
func Resolve(global Global, defaults Resolved) (Resolved, error) {
	r := defaults
	if global.ScriptRoot != "" {
		r.ScriptRoot = global.ScriptRoot
	}
	if global.ScriptRootEnvVarName != "" {
		r.ScriptRootEnvVarName = global.ScriptRootEnvVarName
	}
	root, err := paths.ExpandHome(r.ScriptRoot)
	if err != nil {
		return Resolved{}, err
	}
	r.ScriptRoot = root
	return r, nil
}
