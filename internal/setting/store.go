package setting

import (
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

// FilePerm is the mode used when creating or rewriting the settings file.
const FilePerm os.FileMode = 0o644

var placeholderRe = regexp.MustCompile(`\{\{([^{}\s]+)\}\}`)

// Load reads the settings document at path, applies runtime variables and
// parses it. A missing file is created holding an empty document.
func Load(fsys afero.Fs, path string, vars map[string]string) (*Document, error) {
	exists, err := fileutil.Exists(fsys, path)
	if err != nil {
		return nil, errors.E(errors.KindConfigRead, err, "checking settings file %s", path)
	}
	if !exists {
		doc := NewDocument()
		if err := Persist(fsys, path, doc); err != nil {
			return nil, errors.E(errors.KindConfigRead, err, "creating settings file %s", path)
		}
		return doc, nil
	}

	raw, err := fileutil.ReadFileWithLimit(fsys, path)
	if err != nil {
		return nil, errors.E(errors.KindConfigRead, err, "reading settings file %s", path)
	}

	return Parse(Substitute(string(raw), vars), path)
}

// Parse decodes TOML text into a Document. source names the origin in errors.
func Parse(text, source string) (*Document, error) {
	doc := NewDocument()
	if err := toml.Unmarshal([]byte(text), doc); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, errors.E(errors.KindConfigParse, err, "parsing %s at line %d, column %d", source, row, col)
		}
		return nil, errors.E(errors.KindConfigParse, err, "parsing %s", source)
	}
	doc.Normalize()
	return doc, nil
}

// Persist writes doc to path atomically, creating parent directories.
func Persist(fsys afero.Fs, path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return errors.E(errors.KindConfigWrite, err, "encoding settings")
	}
	if err := fileutil.WriteFileAll(fsys, path, data, FilePerm); err != nil {
		return errors.E(errors.KindConfigWrite, err, "writing settings file %s", path)
	}
	return nil
}

// Marshal encodes doc as TOML.
func Marshal(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = NewDocument()
	}
	return toml.Marshal(doc)
}

// Substitute replaces {{name}} with vars[name] in raw text. Keys are applied in
// sorted order; placeholders without a matching key are left untouched.
func Substitute(raw string, vars map[string]string) string {
	if len(vars) == 0 {
		return raw
	}
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		raw = strings.ReplaceAll(raw, "{{"+k+"}}", vars[k])
	}
	return raw
}

// Placeholders returns the sorted, unique placeholder names still present in raw.
func Placeholders(raw string) []string {
	seen := make(map[string]struct{})
	for _, m := range placeholderRe.FindAllStringSubmatch(raw, -1) {
		seen[m[1]] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
