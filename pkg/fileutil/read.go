package fileutil

import (
	"io"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// MaxFileSize is the maximum file size we'll read (1MB).
// Settings documents, shell profiles and import files are all far below this.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns an error if the file is larger than the limit.
func ReadFileWithLimit(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if the size is already too large
	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// Exists reports whether path exists on fsys. Errors other than not-exist
// are returned so callers do not mistake a permission problem for absence.
func Exists(fsys afero.Fs, path string) (bool, error) {
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		return false, errors.Wrapf(err, "checking %s", path)
	}
	return ok, nil
}
