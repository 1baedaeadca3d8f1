package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/paths"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

const idLayout = "20060102T150405"

// Manager handles backup creation, restoration, and pruning.
type Manager struct {
	fs             afero.Fs
	rootDir        string
	retentionCount int
	disabled       bool
	now            func() time.Time

	mu   sync.Mutex
	done map[string]bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups to retain per scope.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithFs sets the filesystem backups are read from and written to.
func WithFs(fsys afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fsys
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithDisabled turns EnsureBackedUp into a no-op.
func WithDisabled(disabled bool) Option {
	return func(m *Manager) {
		m.disabled = disabled
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		fs:             afero.NewOsFs(),
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
		done:           make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureBackedUp snapshots files the first time scope is modified in this
// session. Later calls for the same scope are no-ops. Paths that do not exist
// yet are skipped; if none exist nothing is recorded and the next call tries again.
// Old backups beyond the retention count are pruned afterwards.
func (m *Manager) EnsureBackedUp(scope string, files ...string) error {
	if m == nil || m.disabled || len(files) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done[scope] {
		return nil
	}

	if _, err := m.Backup(scope, files); err != nil {
		if errors.Is(err, ErrNothingToBackUp) {
			return nil
		}
		return errors.Wrapf(err, "creating %s backup", scope)
	}
	m.done[scope] = true

	return m.Prune(scope, m.retentionCount)
}

// Backup copies files into a new backup for scope. Missing files are skipped.
// Each file is stored with its permissions and a SHA256 hash.
func (m *Manager) Backup(scope string, files []string) (*Manifest, error) {
	if scope == "" {
		return nil, errors.New("scope is required")
	}
	if len(files) == 0 {
		return nil, errors.New("at least one path is required")
	}

	id, err := m.nextID(scope)
	if err != nil {
		return nil, err
	}
	backupPath := m.backupPath(scope, id)

	var stored []File
	for _, p := range files {
		info, err := m.fs.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", p)
		}
		if info.IsDir() {
			continue
		}

		bf, err := m.backupFile(p, backupPath)
		if err != nil {
			return nil, errors.Wrapf(err, "backing up file %s", p)
		}
		stored = append(stored, *bf)
	}

	if len(stored) == 0 {
		_ = m.fs.RemoveAll(backupPath)
		return nil, ErrNothingToBackUp
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   m.now().UTC(),
		Scope:       scope,
		Files:       stored,
		ToolVersion: Version,
		ID:          id,
	}

	if err := fileutil.AtomicWriteJSON(m.fs, filepath.Join(backupPath, "manifest.json"), manifest, 0o644); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	return manifest, nil
}

// nextID returns a timestamp ID not yet used in scope, suffixing -2, -3, ...
// when several backups land within the same second.
func (m *Manager) nextID(scope string) (string, error) {
	base := m.now().Format(idLayout)
	id := base
	for n := 2; ; n++ {
		exists, err := afero.DirExists(m.fs, m.backupPath(scope, id))
		if err != nil {
			return "", errors.Wrap(err, "checking backup directory")
		}
		if !exists {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	if err := m.fs.MkdirAll(m.backupPath(scope, id), 0o755); err != nil {
		return "", errors.Wrap(err, "creating backup directory")
	}
	return id, nil
}

func (m *Manager) backupFile(src, backupPath string) (*File, error) {
	relPath := generateRelPath(src)
	dst := filepath.Join(backupPath, relPath)

	if err := m.fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, err := m.copyFile(src, dst)
	if err != nil {
		return nil, err
	}

	return &File{
		OriginalPath: src,
		RelPath:      relPath,
		SHA256Hash:   hash,
		Mode:         mode,
	}, nil
}

// Restore copies the files of a backup back to their original locations after
// verifying every hash. An empty backupID selects the newest backup.
func (m *Manager) Restore(scope, backupID string) (*Manifest, error) {
	if scope == "" {
		return nil, errors.New("scope is required")
	}
	if backupID == "" {
		list, err := m.List(scope)
		if err != nil {
			return nil, err
		}
		backupID = list[0].ID
	}

	manifest, err := m.Get(scope, backupID)
	if err != nil {
		return nil, err
	}

	backupPath := m.backupPath(scope, backupID)

	// Verify everything first so a corrupted backup restores nothing.
	for _, bf := range manifest.Files {
		hash, err := m.hashFile(filepath.Join(backupPath, bf.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		if hash != bf.SHA256Hash {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.RelPath)
		}
	}

	for _, bf := range manifest.Files {
		if err := m.fs.MkdirAll(filepath.Dir(bf.OriginalPath), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", bf.OriginalPath)
		}
		if _, _, err := m.copyFile(filepath.Join(backupPath, bf.RelPath), bf.OriginalPath); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", bf.OriginalPath)
		}
		if err := m.fs.Chmod(bf.OriginalPath, bf.Mode); err != nil {
			return nil, errors.Wrapf(err, "setting permissions for %s", bf.OriginalPath)
		}
	}

	return manifest, nil
}

// List returns all backups for scope, newest first.
func (m *Manager) List(scope string) ([]Manifest, error) {
	if scope == "" {
		return nil, errors.New("scope is required")
	}

	entries, err := afero.ReadDir(m.fs, filepath.Join(m.rootDir, scope))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(scope, entry.Name())
		if err != nil {
			// Skip invalid backup directories
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return compareIDs(b.ID, a.ID)
	})

	return manifests, nil
}

// compareIDs orders IDs so that "T-10" sorts after "T-9".
func compareIDs(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

// Prune keeps the newest keep backups for scope and removes the rest.
func (m *Manager) Prune(scope string, keep int) error {
	if scope == "" {
		return errors.New("scope is required")
	}
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(scope)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := m.fs.RemoveAll(m.backupPath(scope, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}

	return nil
}

// Get returns the manifest for a specific backup.
func (m *Manager) Get(scope, backupID string) (*Manifest, error) {
	if scope == "" {
		return nil, errors.New("scope is required")
	}
	if backupID == "" {
		return nil, errors.New("backup ID is required")
	}

	data, err := afero.ReadFile(m.fs, filepath.Join(m.backupPath(scope, backupID), "manifest.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	manifest.ID = backupID
	return &manifest, nil
}

func (m *Manager) backupPath(scope, backupID string) string {
	return filepath.Join(m.rootDir, scope, backupID)
}

func (m *Manager) hashFile(path string) (string, error) {
	f, err := m.fs.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst and returns the content hash and source mode.
func (m *Manager) copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := m.fs.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode().Perm()

	dstFile, err := m.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	if err := m.fs.Chmod(dst, mode); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// generateRelPath turns an absolute path into a relative storage path. Leading
// separators and drive-letter colons are removed.
func generateRelPath(absPath string) string {
	clean := filepath.Clean(absPath)
	clean = strings.ReplaceAll(clean, ":", "")
	return strings.TrimLeft(clean, `/\`)
}
