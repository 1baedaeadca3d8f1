// Package script writes the per-alias executables that live under the script root.
package script

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

// Generator turns one alias command into an executable file.
type Generator interface {
	// Ext is the file extension including the dot.
	Ext() string
	// Content renders the bytes written for cmd.
	Content(cmd string) ([]byte, error)
	// Write replaces the script for alias under root.
	Write(root, alias, cmd string) error
	// Remove deletes the script for alias. A missing script is not an error.
	Remove(root, alias string) error
}

// Path returns root/alias+ext.
func Path(g Generator, root, alias string) string {
	return filepath.Join(root, alias+g.Ext())
}

// base carries the file handling shared by both generators.
type base struct {
	fs   afero.Fs
	ext  string
	perm os.FileMode
}

func (b base) Ext() string { return b.ext }

func (b base) write(root, alias string, content []byte) error {
	path := filepath.Join(root, alias+b.ext)
	if err := b.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.E(errors.KindScriptWrite, err, "removing old script %s", path)
	}
	if err := fileutil.AtomicWriteFile(b.fs, path, content, b.perm); err != nil {
		return errors.E(errors.KindScriptWrite, err, "writing script %s", path)
	}
	return nil
}

func (b base) Remove(root, alias string) error {
	path := filepath.Join(root, alias+b.ext)
	if err := b.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.E(errors.KindScriptRemove, err, "removing script %s", path)
	}
	return nil
}

// Posix writes <alias>.sh files whose content is exactly the command.
type Posix struct {
	base
}

// NewPosix returns a POSIX generator writing through fsys.
func NewPosix(fsys afero.Fs) *Posix {
	return &Posix{base{fs: fsys, ext: ".sh", perm: 0o755}}
}

// Content implements Generator.
func (p *Posix) Content(cmd string) ([]byte, error) {
	return []byte(cmd), nil
}

// Write implements Generator.
func (p *Posix) Write(root, alias, cmd string) error {
	content, _ := p.Content(cmd)
	return p.write(root, alias, content)
}
