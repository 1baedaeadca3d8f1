package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{"NO_COLOR prevents color", map[string]string{"NO_COLOR": "1"}, true, false},
		{"TERM=dumb prevents color", map[string]string{"TERM": "dumb"}, true, false},
		{"non-TTY prevents color", nil, false, false},
		{"TTY with normal TERM", map[string]string{"TERM": "xterm-256color"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERM", "xterm")
			if _, ok := tt.env["NO_COLOR"]; !ok {
				unsetenv(t, "NO_COLOR")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if got := supportsColor(tt.isTTY); got != tt.want {
				t.Errorf("supportsColor() = %v, want %v (env=%v, isTTY=%v)", got, tt.want, tt.env, tt.isTTY)
			}
		})
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY should return false for a bytes.Buffer")
	}
	if IsInteractive(strings.NewReader(""), &buf) {
		t.Error("IsInteractive should return false for in-memory streams")
	}
}
