package alias

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/script"
	"github.com/thoreinstein/aliasx/internal/setting"
)

func TestEngine_SetCommitGet(t *testing.T) {
	tests := []struct {
		name  string
		group string
		alias string
		cmd   string
	}{
		{"default group", "default", "ll", "ls -la"},
		{"empty group means default", "", "gs", "git status"},
		{"named group", "work", "deploy", "make deploy ENV=prod"},
		{"pipes and quotes", "tools", "errs", `grep -r "error" . | less`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			e, binder := newEngine(t, fs, nil)

			require.NoError(t, e.Set(tt.group, tt.alias, setting.Alias{Cmd: tt.cmd}))
			_, ok := e.Get(tt.group, tt.alias)
			assert.False(t, ok, "reads must not see buffered mutations")

			require.NoError(t, e.Commit(context.Background()))

			got, ok := e.Get(tt.group, tt.alias)
			require.True(t, ok)
			assert.Equal(t, tt.cmd, got.Cmd)
			assert.Equal(t, tt.cmd, readScript(t, fs, tt.alias))
			assert.Equal(t, 1, binder.binds)
			assert.Equal(t, testRoot, binder.last.ScriptRoot)
			assert.Empty(t, e.Pending())
		})
	}
}

func TestEngine_CommitPersists(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)
	require.NoError(t, e.Set("work", "deploy", setting.Alias{Cmd: "make deploy"}))
	require.NoError(t, e.Commit(context.Background()))

	reloaded, _ := newEngine(t, fs, nil)
	got, ok := reloaded.Get("work", "deploy")
	require.True(t, ok)
	assert.Equal(t, "make deploy", got.Cmd)
}

func TestEngine_RemoveCommit(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)
	ctx := context.Background()

	require.NoError(t, e.Set("work", "ll", setting.Alias{Cmd: "ls -la"}))
	require.NoError(t, e.Commit(ctx))
	require.True(t, scriptExists(t, fs, "ll"))

	require.NoError(t, e.Remove("work", "ll"))
	require.NoError(t, e.Commit(ctx))

	_, ok := e.Get("work", "ll")
	assert.False(t, ok)
	assert.False(t, scriptExists(t, fs, "ll"))

	g, ok := e.GetGroup("work")
	require.True(t, ok, "emptied group stays in the document")
	assert.Empty(t, g.Mapping)
}

func TestEngine_RemoveMissingIsNoop(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)

	require.NoError(t, e.Remove("nope", "ghost"))
	require.NoError(t, e.Commit(context.Background()))
	assert.Empty(t, e.List())
	_, ok := e.GetGroup("nope")
	assert.False(t, ok)
}

func TestEngine_RemoveKeepsScriptMappedElsewhere(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)
	ctx := context.Background()

	require.NoError(t, e.Set("a", "ll", setting.Alias{Cmd: "ls -la"}))
	require.NoError(t, e.Commit(ctx))
	require.NoError(t, e.Set("b", "ll", setting.Alias{Cmd: "ls -l"}))
	require.NoError(t, e.Commit(ctx))

	require.NoError(t, e.Remove("b", "ll"))
	require.NoError(t, e.Commit(ctx))

	assert.Equal(t, []string{"a"}, e.Document().Groups("ll"))
	require.True(t, scriptExists(t, fs, "ll"))
	assert.Equal(t, "ls -la", readScript(t, fs, "ll"))
}

func TestEngine_ScriptFollowsLastGroupByName(t *testing.T) {
	tests := []struct {
		name  string
		steps []Mutation
		want  string
	}{
		{
			name: "set in earlier group keeps later owner",
			steps: []Mutation{
				{Kind: KindSet, Group: "b", Setting: &setting.Alias{Cmd: "ls -b"}},
				{Kind: KindSet, Group: "a", Setting: &setting.Alias{Cmd: "ls -a"}},
			},
			want: "ls -b",
		},
		{
			name: "set in later group takes over",
			steps: []Mutation{
				{Kind: KindSet, Group: "a", Setting: &setting.Alias{Cmd: "ls -a"}},
				{Kind: KindSet, Group: "b", Setting: &setting.Alias{Cmd: "ls -b"}},
			},
			want: "ls -b",
		},
		{
			name: "removing owner falls back to remaining group",
			steps: []Mutation{
				{Kind: KindSet, Group: "a", Setting: &setting.Alias{Cmd: "ls -a"}},
				{Kind: KindSet, Group: "b", Setting: &setting.Alias{Cmd: "ls -b"}},
				{Kind: KindRemove, Group: "b"},
			},
			want: "ls -a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			e, _ := newEngine(t, fs, nil)
			ctx := context.Background()

			for _, m := range tt.steps {
				if m.Kind == KindSet {
					require.NoError(t, e.Set(m.Group, "ll", *m.Setting))
				} else {
					require.NoError(t, e.Remove(m.Group, "ll"))
				}
				require.NoError(t, e.Commit(ctx))
			}
			assert.Equal(t, tt.want, readScript(t, fs, "ll"))
		})
	}
}

func TestEngine_RemoveLastOwnerDeletesScript(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)
	ctx := context.Background()

	require.NoError(t, e.Set("a", "ll", setting.Alias{Cmd: "ls -a"}))
	require.NoError(t, e.Commit(ctx))
	require.NoError(t, e.Set("b", "ll", setting.Alias{Cmd: "ls -b"}))
	require.NoError(t, e.Commit(ctx))

	require.NoError(t, e.Remove("a", "ll"))
	require.NoError(t, e.Commit(ctx))
	assert.Equal(t, "ls -b", readScript(t, fs, "ll"))

	require.NoError(t, e.Remove("b", "ll"))
	require.NoError(t, e.Commit(ctx))
	assert.False(t, scriptExists(t, fs, "ll"))
}

func TestEngine_LastWriteWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)

	require.NoError(t, e.Set("g", "a", setting.Alias{Cmd: "echo one"}))
	require.NoError(t, e.Set("g", "a", setting.Alias{Cmd: "echo two"}))
	require.NoError(t, e.Commit(context.Background()))

	got, ok := e.Get("g", "a")
	require.True(t, ok)
	assert.Equal(t, "echo two", got.Cmd)
	assert.Equal(t, "echo two", readScript(t, fs, "a"))
}

func TestEngine_SetThenRemoveBeforeCommit(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)

	require.NoError(t, e.Set("g", "a", setting.Alias{Cmd: "echo one"}))
	require.NoError(t, e.Remove("g", "a"))
	require.NoError(t, e.Commit(context.Background()))

	_, ok := e.Get("g", "a")
	assert.False(t, ok)
	assert.False(t, scriptExists(t, fs, "a"))
}

func TestEngine_RemoveGroup(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)
	ctx := context.Background()

	require.NoError(t, e.Set("tools", "t1", setting.Alias{Cmd: "echo 1"}))
	require.NoError(t, e.Set("tools", "t2", setting.Alias{Cmd: "echo 2"}))
	require.NoError(t, e.Set("keep", "k1", setting.Alias{Cmd: "echo k"}))
	require.NoError(t, e.Commit(ctx))

	assert.Equal(t, 2, e.RemoveGroup("tools"))
	require.NoError(t, e.Set("other", "o1", setting.Alias{Cmd: "echo o"}))
	require.NoError(t, e.Set("keep", "k2", setting.Alias{Cmd: "echo k2"}))
	require.NoError(t, e.Commit(ctx))

	g, ok := e.GetGroup("tools")
	require.True(t, ok)
	assert.Empty(t, g.Mapping)
	assert.False(t, scriptExists(t, fs, "t1"))
	assert.False(t, scriptExists(t, fs, "t2"))

	assert.Equal(t, []string{"k1", "k2", "o1"}, e.List())
	assert.True(t, scriptExists(t, fs, "o1"))

	assert.Zero(t, e.RemoveGroup("missing"))
}

func TestEngine_RemoveGroupUsesPersistedDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)

	// Buffered but uncommitted aliases are not part of the group yet.
	require.NoError(t, e.Set("tools", "t1", setting.Alias{Cmd: "echo 1"}))
	assert.Zero(t, e.RemoveGroup("tools"))
}

func TestEngine_InvalidNames(t *testing.T) {
	e, _ := newEngine(t, afero.NewMemMapFs(), nil)

	for _, name := range []string{"", "a/b", `a\b`, ".hidden", "-x", "two words", "con", "NUL.txt"} {
		t.Run(name, func(t *testing.T) {
			err := e.Set("", name, setting.Alias{Cmd: "true"})
			require.ErrorIs(t, err, errors.ErrInvalidAliasName)
			require.ErrorIs(t, e.Remove("", name), errors.ErrInvalidAliasName)
		})
	}
	assert.Empty(t, e.Pending())
}

func TestEngine_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)
	ctx := context.Background()

	exists, err := afero.Exists(fs, testSettingPath)
	require.NoError(t, err)
	require.True(t, exists, "missing settings file is created")

	require.NoError(t, e.Set("default", "ll", setting.Alias{Cmd: "ls -la"}))
	require.NoError(t, e.Commit(ctx))
	assert.Equal(t, []string{"ll"}, e.List())

	require.NoError(t, e.Remove("", "ll"))
	require.NoError(t, e.Commit(ctx))
	assert.Empty(t, e.List())
}

func TestEngine_CommitFailureKeepsBuffer(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, binder := newEngine(t, fs, nil)
	binder.err = errors.E(errors.KindActivation, nil, "boom")

	require.NoError(t, e.Set("", "ll", setting.Alias{Cmd: "ls -la"}))
	err := e.Commit(context.Background())
	require.ErrorIs(t, err, errors.ErrActivation)

	// Settings and scripts stay written; nothing is rolled back.
	_, ok := e.Get("", "ll")
	assert.True(t, ok)
	assert.True(t, scriptExists(t, fs, "ll"))
	assert.Len(t, e.Pending(), 1)

	binder.err = nil
	require.NoError(t, e.Commit(context.Background()))
	assert.Empty(t, e.Pending())
}

func TestEngine_CommitReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	newEngine(t, base, nil)

	ro := afero.NewReadOnlyFs(base)
	e, err := NewWithStrategies(Options{
		Fs:          ro,
		SettingPath: testSettingPath,
		GOOS:        "linux",
		Defaults:    testDefaults,
		Home:        "/home/test",
	}, script.NewPosix(ro), &fakeBinder{})
	require.NoError(t, err)

	require.NoError(t, e.Set("", "ll", setting.Alias{Cmd: "ls"}))
	require.ErrorIs(t, e.Commit(context.Background()), errors.ErrConfigWrite)
	_, ok := e.Get("", "ll")
	assert.False(t, ok)
}

func TestEngine_CommitCanceled(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, binder := newEngine(t, fs, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, e.Set("", "ll", setting.Alias{Cmd: "ls"}))
	require.ErrorIs(t, e.Commit(ctx), context.Canceled)
	assert.Zero(t, binder.binds)
	assert.Len(t, e.Pending(), 1)
}

func TestEngine_ClearKeepsScripts(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)
	hook := &countingHook{}
	e.backups = hook
	ctx := context.Background()

	require.NoError(t, e.Set("", "ll", setting.Alias{Cmd: "ls"}))
	require.NoError(t, e.Commit(ctx))

	require.NoError(t, e.Clear(ctx))
	assert.Empty(t, e.GetAll())
	assert.True(t, scriptExists(t, fs, "ll"))
	assert.Equal(t, []string{"settings"}, hook.scopes)

	reloaded, _ := newEngine(t, fs, nil)
	assert.Empty(t, reloaded.List())
}

func TestEngine_PurgeDeletesScripts(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)
	ctx := context.Background()

	require.NoError(t, e.Set("a", "ll", setting.Alias{Cmd: "ls"}))
	require.NoError(t, e.Set("b", "gs", setting.Alias{Cmd: "git status"}))
	require.NoError(t, e.Commit(ctx))
	require.NoError(t, e.Set("c", "pending", setting.Alias{Cmd: "true"}))

	require.NoError(t, e.Purge(ctx))
	assert.Empty(t, e.GetAll())
	assert.False(t, scriptExists(t, fs, "ll"))
	assert.False(t, scriptExists(t, fs, "gs"))
	assert.Empty(t, e.Pending())
}

func TestEngine_Accessors(t *testing.T) {
	fs := afero.NewMemMapFs()
	e, _ := newEngine(t, fs, nil)

	assert.Equal(t, testRoot, e.ScriptRoot())
	assert.Equal(t, testRoot+"/ll.sh", e.ScriptPath("ll"))
	assert.Equal(t, ".sh", e.ScriptExt())
	assert.Equal(t, testSettingPath, e.SettingPath())
	assert.Equal(t, testDefaults, e.Resolved())
	assert.Equal(t, "fake", e.Binder().Describe())
	assert.Same(t, fs, e.Fs())

	active, err := e.Active(context.Background())
	require.NoError(t, err)
	assert.False(t, active)
	require.NoError(t, e.Activate(context.Background()))
	active, err = e.Active(context.Background())
	require.NoError(t, err)
	assert.True(t, active)
}
