package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aliasx/internal/cli/prompt"
	"github.com/thoreinstein/aliasx/internal/setting"
)

const testSettingPath = "/home/test/.config/aliasx/alias-setting.toml"

// noopRunner stands in for re-sourcing the shell profile.
type noopRunner struct{}

func (noopRunner) Run(context.Context, string, ...string) ([]byte, error) { return nil, nil }

// setupCLI points every command at an in-memory filesystem on linux and
// restores the package state when the test ends.
func setupCLI(t *testing.T) afero.Fs {
	t.Helper()

	origFs, origGoos, origHome, origRunner, origStore := appFs, goos, homeDir, runner, envStore
	origSelector, origEditor := newSelector, newEditor
	t.Cleanup(func() {
		appFs, goos, homeDir, runner, envStore = origFs, origGoos, origHome, origRunner, origStore
		newSelector, newEditor = origSelector, origEditor
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	fs := afero.NewMemMapFs()
	appFs = fs
	goos = "linux"
	homeDir = "/home/test"
	runner = noopRunner{}
	envStore = nil

	t.Setenv("SHELL", "/bin/bash")
	t.Setenv("ALIASX_CONFIG_DIR", t.TempDir())
	t.Setenv("ALIASX_DEBUG", "")
	resetFlags(rootCmd)

	return fs
}

// resetFlags puts every flag of c and its children back to its default so
// that one Execute does not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Value.Type() != "stringArray" {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
	defines = nil
}

// execute runs aliasx with args against the test settings file and returns
// what it wrote to stdout. Log output goes to the test log.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, stderr bytes.Buffer
	t.Cleanup(func() {
		if stderr.Len() > 0 {
			t.Logf("stderr of aliasx %s:\n%s", strings.Join(args, " "), stderr.String())
		}
	})
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--setting", testSettingPath}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	resetFlags(rootCmd)
	return out.String(), err
}

// mustExecute is execute for steps that have to succeed.
func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, "aliasx %s\n%s", strings.Join(args, " "), out)
	return out
}

// listJSONEntries runs list --json and decodes the result.
func listJSONEntries(t *testing.T, args ...string) []listEntry {
	t.Helper()
	out := mustExecute(t, append([]string{"list", "--json"}, args...)...)
	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries), out)
	return entries
}

// loadSettings reads the settings file back from the test filesystem.
func loadSettings(t *testing.T, fs afero.Fs) *setting.Document {
	t.Helper()
	doc, err := setting.Load(fs, testSettingPath, nil)
	require.NoError(t, err)
	return doc
}

// scriptRoot is where posix scripts land for the default settings.
func scriptRoot() string {
	return setting.Defaults().ScriptRoot
}

// scriptPath is where the posix generator writes the script for name.
func scriptPath(name string) string {
	return filepath.Join(scriptRoot(), name+".sh")
}

// pickWith makes the remove picker answer with input.
func pickWith(input string) {
	newSelector = func(cmd *cobra.Command) *prompt.Selector {
		return prompt.NewSelectorWithIO(strings.NewReader(input), cmd.OutOrStdout())
	}
}
