package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aliasx/internal/errors"
)

func TestExportImport(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "toml", path: "/tmp/aliases.toml", want: "make deploy"},
		{name: "yaml", path: "/tmp/aliases.yaml", want: "cmd: ls -la"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setupCLI(t)
			mustExecute(t, "set", "ll", "ls -la")
			mustExecute(t, "set", "-g", "work", "deploy", "make deploy")

			out := mustExecute(t, "export", tt.path)
			assert.Contains(t, out, "exported 2 alias(es)")

			data, err := afero.ReadFile(fs, tt.path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)

			mustExecute(t, "clear", "--purge")
			assert.Empty(t, listJSONEntries(t))

			out = mustExecute(t, "import", tt.path)
			assert.Contains(t, out, "imported 2 alias(es)")

			entries := listJSONEntries(t)
			require.Len(t, entries, 2)
			for _, name := range []string{"ll", "deploy"} {
				exists, err := afero.Exists(fs, scriptPath(name))
				require.NoError(t, err)
				assert.True(t, exists, name)
			}
		})
	}
}

func TestExport_RefusesOverwrite(t *testing.T) {
	fs := setupCLI(t)
	mustExecute(t, "set", "ll", "ls -la")
	require.NoError(t, afero.WriteFile(fs, "/tmp/out.toml", []byte("keep"), 0o644))

	_, err := execute(t, "export", "/tmp/out.toml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigWrite))

	data, err := afero.ReadFile(fs, "/tmp/out.toml")
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	mustExecute(t, "export", "--force", "/tmp/out.toml")
	data, err = afero.ReadFile(fs, "/tmp/out.toml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "ls -la")
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "missing file", wantErr: errors.ErrConfigRead},
		{name: "bad toml", content: "[alias\n", wantErr: errors.ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setupCLI(t)
			mustExecute(t, "set", "ll", "ls -la")
			if tt.content != "" {
				require.NoError(t, afero.WriteFile(fs, "/tmp/in.toml", []byte(tt.content), 0o644))
			}

			_, err := execute(t, "import", "/tmp/in.toml")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			// The current settings survive a failed import.
			assert.Len(t, listJSONEntries(t), 1)
		})
	}
}
