package doctor

import (
	"context"

	"github.com/spf13/afero"

	"github.com/thoreinstein/aliasx/internal/activation"
	"github.com/thoreinstein/aliasx/internal/script"
	"github.com/thoreinstein/aliasx/internal/setting"
)

// Engine is the part of alias.Engine the checks inspect and repair through.
type Engine interface {
	Fs() afero.Fs
	SettingPath() string
	Document() *setting.Document
	ScriptRoot() string
	Generator() script.Generator
	Binder() activation.Binder
	Rebuild(ctx context.Context) error
	Activate(ctx context.Context) error
	Active(ctx context.Context) (bool, error)
}
