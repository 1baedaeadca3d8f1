package alias

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aliasx/internal/script"
	"github.com/thoreinstein/aliasx/internal/setting"
)

const (
	testSettingPath = "/config/aliasx/alias-setting.toml"
	testRoot        = "/data/aliasx/script"
)

var testDefaults = setting.Resolved{
	ScriptRoot:           testRoot,
	ScriptRootEnvVarName: "ALIASX_SCRIPT_ROOT",
}

type fakeBinder struct {
	binds int
	err   error
	last  setting.Resolved
}

func (b *fakeBinder) Bind(_ context.Context, r setting.Resolved) error {
	b.binds++
	b.last = r
	return b.err
}

func (b *fakeBinder) Active(context.Context, setting.Resolved) (bool, error) {
	return b.binds > 0, nil
}

func (b *fakeBinder) Describe() string { return "fake" }

type countingHook struct {
	scopes []string
}

func (h *countingHook) EnsureBackedUp(scope string, _ ...string) error {
	h.scopes = append(h.scopes, scope)
	return nil
}

func newEngine(t *testing.T, fs afero.Fs, vars map[string]string) (*Engine, *fakeBinder) {
	t.Helper()
	binder := &fakeBinder{}
	e, err := NewWithStrategies(Options{
		Fs:          fs,
		SettingPath: testSettingPath,
		Vars:        vars,
		GOOS:        "linux",
		Defaults:    testDefaults,
		Home:        "/home/test",
	}, script.NewPosix(fs), binder)
	require.NoError(t, err)
	return e, binder
}

func readScript(t *testing.T, fs afero.Fs, alias string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, testRoot+"/"+alias+".sh")
	require.NoError(t, err)
	return string(data)
}

func scriptExists(t *testing.T, fs afero.Fs, alias string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, testRoot+"/"+alias+".sh")
	require.NoError(t, err)
	return ok
}
