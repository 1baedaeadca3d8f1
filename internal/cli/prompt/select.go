// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/logging"
)

// Sentinel errors for alias selection.
var (
	ErrNoCandidates       = errors.New("no aliases to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Candidate is one alias offered for selection.
type Candidate struct {
	Group string
	Alias string
	Cmd   string
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (%s): %s", c.Alias, c.Group, c.Cmd)
}

// FindFunc picks an index from candidates. It matches fuzzyfinder.Find.
type FindFunc func(candidates []Candidate) (int, error)

// Selector handles interactive alias selection prompts. On a terminal it
// opens a fuzzy finder; otherwise it prints a numbered list and reads the
// choice from its reader.
type Selector struct {
	reader      io.Reader
	writer      io.Writer
	interactive bool
	find        FindFunc
}

// NewSelector creates a Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader:      os.Stdin,
		writer:      os.Stdout,
		interactive: logging.IsInteractive(os.Stdin, os.Stdout),
		find:        fuzzyFind,
	}
}

// NewSelectorWithIO creates a numbered-list Selector with custom reader and
// writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
		find:   fuzzyFind,
	}
}

// WithFinder switches s to the interactive path using find.
func (s *Selector) WithFinder(find FindFunc) *Selector {
	s.interactive = true
	s.find = find
	return s
}

// Select prompts the user to choose from candidates.
//
// Returns:
//   - ErrNoCandidates if the list is empty
//   - The candidate if only one exists (auto-selects without prompting)
//   - The selected candidate based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D) or the finder is aborted
func (s *Selector) Select(query string, candidates []Candidate) (*Candidate, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	if len(candidates) == 1 {
		return &candidates[0], nil
	}

	if s.interactive {
		idx, err := s.find(candidates)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil, ErrSelectionCancelled
			}
			return nil, errors.Wrap(err, "interactive selection failed")
		}
		return &candidates[idx], nil
	}

	if query != "" {
		fmt.Fprintf(s.writer, "Multiple aliases match %q:\n", query)
	} else {
		fmt.Fprintln(s.writer, "Aliases:")
	}
	for i, c := range candidates {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, c)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
			return nil, ErrSelectionCancelled
		}
		if !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "reading selection")
		}
	}

	input = strings.TrimSpace(input)

	if input == "" {
		return &candidates[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	if selection < 1 || selection > len(candidates) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(candidates))
	}

	return &candidates[selection-1], nil
}

func fuzzyFind(candidates []Candidate) (int, error) {
	return fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i].Alias + " (" + candidates[i].Group + ")"
		},
		fuzzyfinder.WithPromptString("alias> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			c := candidates[i]
			return fmt.Sprintf("Alias: %s\nGroup: %s\n\nCommand:\n%s", c.Alias, c.Group, c.Cmd)
		}),
	)
}
