package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/aliasx/internal/errors"
)

var sample = []Candidate{
	{Group: "default", Alias: "ll", Cmd: "ls -la"},
	{Group: "work", Alias: "ll", Cmd: "ls -l"},
	{Group: "tools", Alias: "ll", Cmd: "exa -l"},
}

func TestSelect_EmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	_, err := s.Select("ll", nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got: %v", err)
	}
}

func TestSelect_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	result, err := s.Select("ll", sample[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Group != "default" {
		t.Errorf("expected 'default', got %q", result.Group)
	}
	if buf.Len() > 0 {
		t.Errorf("expected no output for single item, got: %s", buf.String())
	}
}

func TestSelect_ValidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantGroup string
	}{
		{"explicit first", "1\n", "default"},
		{"explicit last", "3\n", "tools"},
		{"default on empty", "\n", "default"},
		{"whitespace trimmed", "  2  \n", "work"},
		{"no trailing newline", "2", "work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			result, err := s.Select("ll", sample)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Group != tt.wantGroup {
				t.Errorf("expected group %q, got %q", tt.wantGroup, result.Group)
			}

			out := buf.String()
			if !strings.Contains(out, `Multiple aliases match "ll"`) {
				t.Errorf("missing prompt header in output: %s", out)
			}
			if !strings.Contains(out, "[3] ll (tools): exa -l") {
				t.Errorf("missing candidate line in output: %s", out)
			}
		})
	}
}

func TestSelect_InvalidSelection(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"0\n", "4\n", "-1\n", "abc\n"} {
		var buf bytes.Buffer
		s := NewSelectorWithIO(strings.NewReader(input), &buf)

		_, err := s.Select("", sample)
		if !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("input %q: expected ErrInvalidSelection, got: %v", input, err)
		}
	}
}

func TestSelect_EOF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	_, err := s.Select("", sample)
	if !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got: %v", err)
	}
	if !strings.Contains(buf.String(), "Aliases:") {
		t.Errorf("expected generic header, got: %s", buf.String())
	}
}

func TestSelect_Finder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf).WithFinder(func(c []Candidate) (int, error) {
		return 1, nil
	})

	result, err := s.Select("ll", sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Group != "work" {
		t.Errorf("expected 'work', got %q", result.Group)
	}
	if buf.Len() > 0 {
		t.Errorf("finder path should not print, got: %s", buf.String())
	}
}

func TestSelect_FinderAbort(t *testing.T) {
	t.Parallel()

	s := NewSelectorWithIO(strings.NewReader(""), &bytes.Buffer{}).WithFinder(func([]Candidate) (int, error) {
		return 0, fuzzyfinder.ErrAbort
	})
	_, err := s.Select("", sample)
	if !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got: %v", err)
	}

	s = NewSelectorWithIO(strings.NewReader(""), &bytes.Buffer{}).WithFinder(func([]Candidate) (int, error) {
		return 0, errors.New("tty gone")
	})
	_, err = s.Select("", sample)
	if err == nil || errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected wrapped finder error, got: %v", err)
	}
}
