package alias

import (
	"maps"
	"slices"

	"github.com/thoreinstein/aliasx/internal/setting"
)

// Kind is the kind of a pending mutation.
type Kind int

const (
	KindSet Kind = iota
	KindRemove
)

func (k Kind) String() string {
	if k == KindRemove {
		return "remove"
	}
	return "set"
}

// Mutation is one pending change. Set always carries a Setting and Remove
// never does.
type Mutation struct {
	Kind    Kind
	Group   string
	Setting *setting.Alias
}

// Entry pairs a pending mutation with its alias name.
type Entry struct {
	Alias string
	Mutation
}

// Buffer holds at most one pending mutation per alias name.
type Buffer struct {
	pending map[string]Mutation
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{pending: make(map[string]Mutation)}
}

// Set records a Set for alias, replacing any pending mutation of that name.
func (b *Buffer) Set(group, alias string, s setting.Alias) {
	b.pending[alias] = Mutation{Kind: KindSet, Group: group, Setting: &s}
}

// Remove records a Remove for alias, replacing any pending mutation of that name.
func (b *Buffer) Remove(group, alias string) {
	b.pending[alias] = Mutation{Kind: KindRemove, Group: group}
}

// RemoveGroup records a Remove in group for each of aliases.
func (b *Buffer) RemoveGroup(group string, aliases []string) {
	for _, a := range aliases {
		b.Remove(group, a)
	}
}

// Drain returns the pending mutations ordered by alias name. The buffer keeps
// them until Clear.
func (b *Buffer) Drain() []Entry {
	out := make([]Entry, 0, len(b.pending))
	for _, name := range slices.Sorted(maps.Keys(b.pending)) {
		out = append(out, Entry{Alias: name, Mutation: b.pending[name]})
	}
	return out
}

// Clear discards all pending mutations.
func (b *Buffer) Clear() {
	clear(b.pending)
}

// Len returns the number of pending mutations.
func (b *Buffer) Len() int {
	return len(b.pending)
}
