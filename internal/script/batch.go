package script

import (
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// batchEscaper escapes characters cmd.exe would otherwise interpret.
var batchEscaper = strings.NewReplacer("|", "^|", "$", "^$")

// Batch writes <alias>.bat wrappers that hand the command to PowerShell. The
// file is encoded in a legacy ANSI code page because cmd.exe reads batch files
// that way.
type Batch struct {
	base
	codePage int
	enc      encoding.Encoding
}

// NewBatch returns a batch generator. A zero codePage selects the active ANSI
// code page of the host; an unknown detected code page falls back to 1252.
func NewBatch(fsys afero.Fs, codePage int) (*Batch, error) {
	if codePage == 0 {
		codePage = ActiveCodePage()
		if !SupportedCodePage(codePage) {
			codePage = FallbackCodePage
		}
	}
	enc, ok := codePages[codePage]
	if !ok {
		return nil, errors.E(errors.KindUnsupportedPlatform, nil, "unsupported code page %d", codePage)
	}
	return &Batch{base: base{fs: fsys, ext: ".bat", perm: 0o755}, codePage: codePage, enc: enc}, nil
}

// CodePage returns the code page scripts are encoded in.
func (b *Batch) CodePage() int { return b.codePage }

// Render returns the batch line for cmd before encoding.
func Render(cmd string) string {
	return "PowerShell -ExecutionPolicy Bypass -Command " + batchEscaper.Replace(cmd) + " ^$args"
}

// Content implements Generator.
func (b *Batch) Content(cmd string) ([]byte, error) {
	out, err := b.enc.NewEncoder().Bytes([]byte(Render(cmd)))
	if err != nil {
		return nil, errors.E(errors.KindScriptWrite, err, "command cannot be encoded in code page %d", b.codePage)
	}
	return out, nil
}

// Write implements Generator.
func (b *Batch) Write(root, alias, cmd string) error {
	content, err := b.Content(cmd)
	if err != nil {
		return err
	}
	return b.write(root, alias, content)
}
