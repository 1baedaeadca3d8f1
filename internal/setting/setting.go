package setting

import (
	"maps"
	"slices"
)

// DefaultGroup is used whenever a caller does not name a group.
const DefaultGroup = "default"

// Alias is the command bound to one alias name.
type Alias struct {
	Cmd string `toml:"cmd" yaml:"cmd" json:"cmd"`
}

// Group is a named namespace of aliases.
type Group struct {
	Mapping map[string]Alias `toml:"mapping" yaml:"mapping" json:"mapping"`
}

// Global holds document-wide options. Empty strings mean absent.
type Global struct {
	ScriptRoot           string `toml:"script_root,omitempty" yaml:"script_root,omitempty" json:"script_root,omitempty"`
	ScriptRootEnvVarName string `toml:"script_root_env_var_name,omitempty" yaml:"script_root_env_var_name,omitempty" json:"script_root_env_var_name,omitempty"`
}

// Document is the root of the persisted settings file.
type Document struct {
	Global Global           `toml:"global" yaml:"global" json:"global"`
	Alias  map[string]Group `toml:"alias" yaml:"alias" json:"alias"`
}

// NewDocument returns an empty document with initialised maps.
func NewDocument() *Document {
	return &Document{Alias: make(map[string]Group)}
}

// Normalize replaces nil maps with empty ones so callers can index freely.
func (d *Document) Normalize() {
	if d.Alias == nil {
		d.Alias = make(map[string]Group)
	}
	for name, g := range d.Alias {
		if g.Mapping == nil {
			g.Mapping = make(map[string]Alias)
			d.Alias[name] = g
		}
	}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := &Document{Global: d.Global, Alias: make(map[string]Group, len(d.Alias))}
	for name, g := range d.Alias {
		out.Alias[name] = g.Clone()
	}
	return out
}

// Clone returns a deep copy of g.
func (g Group) Clone() Group {
	m := make(map[string]Alias, len(g.Mapping))
	maps.Copy(m, g.Mapping)
	return Group{Mapping: m}
}

// GroupNames returns the group names in sorted order.
func (d *Document) GroupNames() []string {
	return slices.Sorted(maps.Keys(d.Alias))
}

// AliasNames returns the sorted, de-duplicated alias names across all groups.
func (d *Document) AliasNames() []string {
	seen := make(map[string]struct{})
	for _, g := range d.Alias {
		for name := range g.Mapping {
			seen[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Groups returns the sorted names of every group that maps alias.
func (d *Document) Groups(alias string) []string {
	var out []string
	for name, g := range d.Alias {
		if _, ok := g.Mapping[alias]; ok {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Owner returns the group whose entry for alias backs the script: the last
// group by name that maps it.
func (d *Document) Owner(alias string) (string, Alias, bool) {
	groups := d.Groups(alias)
	if len(groups) == 0 {
		return "", Alias{}, false
	}
	group := groups[len(groups)-1]
	return group, d.Alias[group].Mapping[alias], true
}

// Len returns the total number of (group, alias) entries.
func (d *Document) Len() int {
	n := 0
	for _, g := range d.Alias {
		n += len(g.Mapping)
	}
	return n
}
