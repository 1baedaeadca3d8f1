//go:build !windows

package activation

import "github.com/thoreinstein/aliasx/internal/errors"

// NewRegistryStore fails outside Windows; the user environment store is the registry.
func NewRegistryStore() (EnvStore, error) {
	return nil, errors.E(errors.KindUnsupportedPlatform, nil, "user environment variables are only managed on windows")
}
