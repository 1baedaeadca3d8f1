package alias

import (
	"context"
	"maps"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/activation"
	"github.com/thoreinstein/aliasx/internal/backup"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/logging"
	"github.com/thoreinstein/aliasx/internal/script"
	"github.com/thoreinstein/aliasx/internal/setting"
)

const defaultGroup = setting.DefaultGroup

// Engine owns the loaded settings document and the mutation buffer.
type Engine struct {
	fs          afero.Fs
	settingPath string
	vars        map[string]string

	doc      *setting.Document
	resolved setting.Resolved
	buffer   *Buffer

	generator script.Generator
	binder    activation.Binder
	backups   activation.BackupHook
}

// Get returns the alias in group from the loaded document.
func (e *Engine) Get(group, alias string) (setting.Alias, bool) {
	g, ok := e.doc.Alias[normalizeGroup(group)]
	if !ok {
		return setting.Alias{}, false
	}
	a, ok := g.Mapping[alias]
	return a, ok
}

// GetGroup returns a copy of group.
func (e *Engine) GetGroup(group string) (setting.Group, bool) {
	g, ok := e.doc.Alias[normalizeGroup(group)]
	if !ok {
		return setting.Group{}, false
	}
	return g.Clone(), true
}

// GetAll returns a copy of every group.
func (e *Engine) GetAll() map[string]setting.Group {
	return e.doc.Clone().Alias
}

// List returns the sorted alias names across all groups.
func (e *Engine) List() []string {
	return e.doc.AliasNames()
}

// Document returns a copy of the loaded document.
func (e *Engine) Document() *setting.Document {
	return e.doc.Clone()
}

// Set buffers a Set. An empty group means the default group.
func (e *Engine) Set(group, alias string, s setting.Alias) error {
	if err := ValidateName(alias); err != nil {
		return err
	}
	e.buffer.Set(normalizeGroup(group), alias, s)
	return nil
}

// Remove buffers a Remove. Removing an alias that does not exist is a no-op at commit.
func (e *Engine) Remove(group, alias string) error {
	if err := ValidateName(alias); err != nil {
		return err
	}
	e.buffer.Remove(normalizeGroup(group), alias)
	return nil
}

// RemoveGroup buffers a Remove for every alias in group as persisted now and
// returns how many were buffered. The group itself stays in the document.
func (e *Engine) RemoveGroup(group string) int {
	group = normalizeGroup(group)
	g, ok := e.doc.Alias[group]
	if !ok {
		return 0
	}
	names := make([]string, 0, len(g.Mapping))
	for name := range maps.Keys(g.Mapping) {
		names = append(names, name)
	}
	e.buffer.RemoveGroup(group, names)
	return len(names)
}

// Pending returns the buffered mutations ordered by alias name.
func (e *Engine) Pending() []Entry {
	return e.buffer.Drain()
}

// Clear empties the alias map and persists it immediately, bypassing the
// buffer. Generated scripts are left on disk; use Purge to delete them too.
func (e *Engine) Clear(ctx context.Context) error {
	if err := e.backupSettings(); err != nil {
		return err
	}
	doc := e.doc.Clone()
	doc.Alias = make(map[string]setting.Group)
	if err := setting.Persist(e.fs, e.settingPath, doc); err != nil {
		return err
	}
	e.doc = doc
	logging.FromContext(ctx).Info("cleared settings; scripts kept", "setting", e.settingPath)
	return nil
}

// Purge clears the document like Clear and deletes the script of every alias
// that was mapped. Pending mutations are discarded.
func (e *Engine) Purge(ctx context.Context) error {
	names := e.doc.AliasNames()
	if err := e.Clear(ctx); err != nil {
		return err
	}
	e.buffer.Clear()
	for _, name := range names {
		if err := e.generator.Remove(e.resolved.ScriptRoot, name); err != nil {
			return err
		}
	}
	logging.FromContext(ctx).Info("purged scripts", "count", len(names), "root", e.resolved.ScriptRoot)
	return nil
}

// Commit applies the buffered mutations. See the package documentation for the
// order of effects.
func (e *Engine) Commit(ctx context.Context) error {
	entries := e.buffer.Drain()
	doc := e.doc.Clone()
	for _, en := range entries {
		apply(doc, en)
	}
	if err := e.flush(ctx, doc, entries); err != nil {
		return err
	}
	e.buffer.Clear()
	return nil
}

// apply merges one mutation. A Set creates the group on demand; a Remove
// leaves an emptied group in place.
func apply(doc *setting.Document, en Entry) {
	switch en.Kind {
	case KindSet:
		g := doc.Alias[en.Group]
		if g.Mapping == nil {
			g.Mapping = make(map[string]setting.Alias)
		}
		g.Mapping[en.Alias] = *en.Setting
		doc.Alias[en.Group] = g
	case KindRemove:
		if g, ok := doc.Alias[en.Group]; ok {
			delete(g.Mapping, en.Alias)
		}
	}
}

// flush persists doc, regenerates the scripts named by entries and binds
// activation. e.doc is replaced once the document is on disk. Each touched
// script is written from doc.Owner and removed only once no group maps the
// name.
func (e *Engine) flush(ctx context.Context, doc *setting.Document, entries []Entry) error {
	logger := logging.FromContext(ctx)

	if err := setting.Persist(e.fs, e.settingPath, doc); err != nil {
		return err
	}
	e.doc = doc

	root := e.resolved.ScriptRoot
	if err := e.fs.MkdirAll(root, 0o755); err != nil {
		return errors.E(errors.KindScriptWrite, err, "creating script root %s", root)
	}

	written := make(map[string]struct{}, len(entries))
	for _, en := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := written[en.Alias]; ok {
			continue
		}
		written[en.Alias] = struct{}{}

		group, owner, ok := doc.Owner(en.Alias)
		if !ok {
			if err := e.generator.Remove(root, en.Alias); err != nil {
				return err
			}
			logger.Debug("removed script", "alias", en.Alias)
			continue
		}
		if err := e.generator.Write(root, en.Alias, owner.Cmd); err != nil {
			return err
		}
		logger.Debug("wrote script", "alias", en.Alias, "group", group)
		logger.Log(ctx, logging.LevelTrace, "script body", "alias", en.Alias, "cmd", owner.Cmd)
	}

	if err := e.binder.Bind(ctx, e.resolved); err != nil {
		return err
	}
	logger.Info("committed", "mutations", len(entries), "setting", e.settingPath)
	return nil
}

// Activate binds activation without changing any alias.
func (e *Engine) Activate(ctx context.Context) error {
	return e.binder.Bind(ctx, e.resolved)
}

// Active reports whether activation is in place.
func (e *Engine) Active(ctx context.Context) (bool, error) {
	return e.binder.Active(ctx, e.resolved)
}

// ScriptRoot returns the resolved script directory.
func (e *Engine) ScriptRoot() string { return e.resolved.ScriptRoot }

// ScriptPath returns where the script for alias lives.
func (e *Engine) ScriptPath(alias string) string {
	return script.Path(e.generator, e.resolved.ScriptRoot, alias)
}

// ScriptExt returns the script file extension including the dot.
func (e *Engine) ScriptExt() string { return e.generator.Ext() }

// SettingPath returns the settings document location.
func (e *Engine) SettingPath() string { return e.settingPath }

// Resolved returns the frozen global values.
func (e *Engine) Resolved() setting.Resolved { return e.resolved }

// Generator returns the script generator in use.
func (e *Engine) Generator() script.Generator { return e.generator }

// Binder returns the activation binder in use.
func (e *Engine) Binder() activation.Binder { return e.binder }

// Fs returns the filesystem the engine reads and writes.
func (e *Engine) Fs() afero.Fs { return e.fs }

func (e *Engine) backupSettings() error {
	if e.backups == nil {
		return nil
	}
	if err := e.backups.EnsureBackedUp(backup.ScopeSettings, e.settingPath); err != nil {
		return errors.E(errors.KindConfigWrite, err, "backing up settings")
	}
	return nil
}
