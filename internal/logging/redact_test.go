package logging

import (
	"log/slog"
	"testing"
)

func TestMaskValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "********"},
		{"abcd", "********"},
		{"abcde", "****bcde"},
	}
	for _, tt := range tests {
		if got := MaskValue(tt.in); got != tt.want {
			t.Errorf("MaskValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedactCommand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no secrets", "ls -la | grep go", "ls -la | grep go"},
		{"bare token", "gh auth login --with-token ghp_1234567890", "gh auth login --with-token ****7890"},
		{"assignment", "GITHUB_TOKEN=ghp_abcdefgh1234 gh pr list", "GITHUB_TOKEN=****1234 gh pr list"},
		{"quoted", `echo "sk-livekey9999"`, `echo "****9999"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactCommand(tt.in); got != tt.want {
				t.Errorf("RedactCommand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{"secret key", slog.String("password", "hunter22"), "****er22"},
		{"secret key non-string", slog.Int("api_key", 123456), "****3456"},
		{"plain", slog.String("alias", "ll"), "ll"},
		{"token value", slog.String("value", "xoxb-abcdef"), "****cdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.attr).Value.String(); got != tt.want {
				t.Errorf("Redact() = %q, want %q", got, tt.want)
			}
		})
	}
}
