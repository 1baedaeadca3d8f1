package alias

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/logging"
	"github.com/thoreinstein/aliasx/internal/setting"
	"github.com/thoreinstein/aliasx/internal/translate"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

// Format is an export/import file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from the file extension; anything but .yaml or
// .yml is TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Rebuild regenerates every script from the loaded document: the alias map is
// emptied, every (group, alias) is applied again as a Set and the result goes
// through the normal commit sequence. Pending mutations are discarded.
//
// When several groups map the same alias name the script carries the command
// of the last group by name. Names that fail ValidateName are skipped with a
// warning.
func (e *Engine) Rebuild(ctx context.Context) error {
	e.buffer.Clear()

	snapshot := e.doc.Clone()
	doc := snapshot.Clone()
	doc.Alias = make(map[string]setting.Group, len(snapshot.Alias))

	logger := logging.FromContext(ctx)
	var entries []Entry
	for _, group := range snapshot.GroupNames() {
		g := snapshot.Alias[group]
		// Keep groups that are empty.
		doc.Alias[group] = setting.Group{Mapping: make(map[string]setting.Alias, len(g.Mapping))}
		for _, name := range slices.Sorted(maps.Keys(g.Mapping)) {
			s := g.Mapping[name]
			en := Entry{Alias: name, Mutation: Mutation{Kind: KindSet, Group: group, Setting: &s}}
			apply(doc, en)
			// Hand-edited names stay in the document but get no script.
			if err := ValidateName(name); err != nil {
				logger.Warn("skipping alias with invalid name", "group", group, "alias", name, "error", err)
				continue
			}
			entries = append(entries, en)
		}
	}

	logger.Info("rebuilding scripts", "aliases", len(entries), "root", e.resolved.ScriptRoot)
	return e.flush(ctx, doc, entries)
}

// Export writes the whole document to path as TOML or YAML by extension.
// An existing file is refused unless force is set.
func (e *Engine) Export(path string, force bool) error {
	exists, err := fileutil.Exists(e.fs, path)
	if err != nil {
		return errors.E(errors.KindConfigWrite, err, "checking %s", path)
	}
	if exists && !force {
		return errors.E(errors.KindConfigWrite, nil, "%s already exists (use --force to overwrite)", path)
	}

	data, err := setting.Marshal(e.doc)
	if err != nil {
		return errors.E(errors.KindConfigWrite, err, "encoding settings")
	}
	if FormatFor(path) == FormatYAML {
		if data, err = translate.TOMLToYAML(data); err != nil {
			return errors.E(errors.KindConfigWrite, err, "converting settings to yaml")
		}
	}

	if err := fileutil.WriteFileAll(e.fs, path, data, setting.FilePerm); err != nil {
		return errors.E(errors.KindConfigWrite, err, "writing %s", path)
	}
	return nil
}

// Import replaces the document with the one at path, persists it and runs
// Rebuild. Runtime variables apply to the imported text as well. The resolved
// script root does not change for the rest of the process.
func (e *Engine) Import(ctx context.Context, path string) error {
	raw, err := fileutil.ReadFileWithLimit(e.fs, path)
	if err != nil {
		return errors.E(errors.KindConfigRead, err, "reading %s", path)
	}

	text := setting.Substitute(string(raw), e.vars)
	if FormatFor(path) == FormatYAML {
		converted, err := translate.YAMLToTOML([]byte(text))
		if err != nil {
			return errors.E(errors.KindConfigParse, err, "parsing %s", path)
		}
		text = string(converted)
	}

	doc, err := setting.Parse(text, path)
	if err != nil {
		return err
	}

	if err := e.backupSettings(); err != nil {
		return err
	}
	if err := setting.Persist(e.fs, e.settingPath, doc); err != nil {
		return err
	}
	e.doc = doc
	logging.FromContext(ctx).Info("imported settings", "from", path, "aliases", doc.Len())

	return e.Rebuild(ctx)
}
