package logging

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func unsetenv(t *testing.T, key string) {
	t.Helper()
	if old, ok := os.LookupEnv(key); ok {
		os.Unsetenv(key)
		t.Cleanup(func() { os.Setenv(key, old) })
	}
}

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("script written", "alias", "ll")

	output := buf.String()
	for _, want := range []string{"INFO", "script written", "alias=ll", now.Format(time.Kitchen)} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("expected trailing newline, got: %q", output)
	}
}

func TestHandler_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "resource output")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE label, got: %q", buf.String())
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("component", "engine").WithGroup("commit")

	logger.Info("message", "aliases", 2, slog.Group("root", "path", "/tmp/s"))

	output := buf.String()
	for _, want := range []string{"component=engine", "commit.aliases=2", "commit.root.path=/tmp/s"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with the level, got: %q", buf.String())
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("sensitive data", "api_key", "secret12345", "Token", "ghp_abcdef")

	output := buf.String()
	if !strings.Contains(output, "api_key=****2345") {
		t.Errorf("expected masked api_key, got: %q", output)
	}
	if !strings.Contains(output, "Token=****cdef") {
		t.Errorf("expected masked Token, got: %q", output)
	}

	buf.Reset()
	logger.Info("set", "cmd", `curl -H "Authorization: Bearer" ghp_secrettoken https://api.github.com`)
	output = buf.String()
	if strings.Contains(output, "ghp_secrettoken") {
		t.Errorf("token inside command should be masked: %q", output)
	}
	if !strings.Contains(output, "****oken") || !strings.Contains(output, "https://api.github.com") {
		t.Errorf("expected command shape kept with masked token, got: %q", output)
	}
}
