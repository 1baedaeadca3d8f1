package doctor

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aliasx/internal/alias"
	"github.com/thoreinstein/aliasx/internal/script"
	"github.com/thoreinstein/aliasx/internal/setting"
)

const (
	testSettingPath = "/config/aliasx/alias-setting.toml"
	testRoot        = "/data/aliasx/script"
)

type mockCheck struct {
	mock.Mock
	name string
}

func newMockCheck(t *testing.T, name string) *mockCheck {
	m := &mockCheck{name: name}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockCheck) Name() string     { return m.name }
func (m *mockCheck) Category() string { return "test" }

func (m *mockCheck) Run(ctx context.Context) *CheckResult {
	args := m.Called(ctx)
	return args.Get(0).(*CheckResult)
}

type fakeBinder struct {
	active bool
	err    error
	binds  int
}

func (b *fakeBinder) Bind(context.Context, setting.Resolved) error {
	b.binds++
	if b.err != nil {
		return b.err
	}
	b.active = true
	return nil
}

func (b *fakeBinder) Active(context.Context, setting.Resolved) (bool, error) {
	return b.active, b.err
}

func (b *fakeBinder) Describe() string { return "/home/test/.zshrc" }

func newTestEngine(t *testing.T, fs afero.Fs, binder *fakeBinder, aliases map[string]map[string]string) *alias.Engine {
	t.Helper()
	e, err := alias.NewWithStrategies(alias.Options{
		Fs:          fs,
		SettingPath: testSettingPath,
		GOOS:        "linux",
		Defaults:    setting.Resolved{ScriptRoot: testRoot, ScriptRootEnvVarName: "ALIASX_SCRIPT_ROOT"},
		Home:        "/home/test",
	}, script.NewPosix(fs), binder)
	require.NoError(t, err)

	if len(aliases) > 0 {
		for group, m := range aliases {
			for name, cmd := range m {
				require.NoError(t, e.Set(group, name, setting.Alias{Cmd: cmd}))
			}
		}
		require.NoError(t, e.Commit(context.Background()))
	}
	return e
}
