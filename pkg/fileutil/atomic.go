// Package fileutil provides file system utilities including atomic write operations.
//
// All helpers take an [afero.Fs] so callers can run against the real disk
// (afero.NewOsFs) or an in-memory filesystem in tests.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// DefaultDirPerm is used for parent directories created by WriteFileAll.
const DefaultDirPerm = 0o755

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory for atomic rename (same filesystem required)
	tmp, err := afero.TempFile(fsys, dir, ".aliasx-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	defer func() {
		// Only remove if rename failed (file still exists)
		if _, statErr := fsys.Stat(tmpName); statErr == nil {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := fsys.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}

	return nil
}

// WriteFileAll creates any missing parent directories, then writes data atomically.
func WriteFileAll(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(path), DefaultDirPerm); err != nil {
		return errors.Wrapf(err, "creating directory %s", filepath.Dir(path))
	}
	return AtomicWriteFile(fsys, path, data, perm)
}

// AtomicWriteJSON writes v as indented JSON to path atomically.
// Uses 2-space indentation and appends a trailing newline for POSIX compliance.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteJSON(fsys afero.Fs, path string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	data = append(data, '\n')

	return AtomicWriteFile(fsys, path, data, perm)
}

// AtomicWriteYAML writes v as YAML to path atomically.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAML(fsys afero.Fs, path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(fsys, path, data, perm)
}

// AtomicWriteTOML writes v as TOML to path atomically.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteTOML(fsys afero.Fs, path string, v any, perm os.FileMode) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling TOML")
	}
	return AtomicWriteFile(fsys, path, data, perm)
}
