package commands

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ALIASX_DEBUG", "")
			verbosity = tt.verbosity
			require.NoError(t, setupLogging(rootCmd))

			logger := slog.Default()
			assert.True(t, logger.Enabled(t.Context(), tt.wantLevel), "level %v should be enabled", tt.wantLevel)
			if tt.wantLevel > logging.LevelTrace {
				assert.False(t, logger.Enabled(t.Context(), tt.wantLevel-4), "level %v should be disabled", tt.wantLevel-4)
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"ALIASX_DEBUG=1", "1", slog.LevelDebug},
		{"ALIASX_DEBUG=true", "true", slog.LevelDebug},
		{"ALIASX_DEBUG=2", "2", logging.LevelTrace},
		{"ALIASX_DEBUG=0", "0", slog.LevelWarn},
		{"ALIASX_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("ALIASX_DEBUG", tt.envVal)

			require.NoError(t, setupLogging(rootCmd))

			logger := slog.Default()
			assert.True(t, logger.Enabled(t.Context(), tt.wantLevel))
			if tt.wantLevel == slog.LevelDebug {
				assert.False(t, logger.Enabled(t.Context(), logging.LevelTrace))
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity, quiet = 1, true
	err := setupLogging(rootCmd)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCodeFor(err))
}

func TestPreflight_UnsupportedPlatform(t *testing.T) {
	setupCLI(t)
	goos = "plan9"

	_, err := execute(t, "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedPlatform))

	// help and version still work
	out := mustExecute(t, "version")
	assert.Contains(t, out, "aliasx version")
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     []string
		wantNone bool
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: []string{"Error: ", "boom"},
		},
		{
			name: "with suggestion",
			err:  errors.NewUserError(errors.New("alias \"x\": not found"), "Run: aliasx list"),
			want: []string{"not found", "hint: ", "Run: aliasx list"},
		},
		{
			name:     "exit code only",
			err:      errors.NewExitError(nil, errors.ExitUser),
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ReportError(&buf, tt.err)
			if tt.wantNone {
				assert.Empty(t, buf.String())
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"äöüäöüäöü", 5, "äö..."},
		{"abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.maxLen))
		})
	}
}
