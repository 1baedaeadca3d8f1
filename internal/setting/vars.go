package setting

import (
	"strings"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// ParseRuntimeVariables turns --define arguments into a variable map. Each entry
// must be key=value; the split happens at the first '='. Later duplicates win.
func ParseRuntimeVariables(defs []string) (map[string]string, error) {
	vars := make(map[string]string, len(defs))
	for _, d := range defs {
		key, value, ok := strings.Cut(d, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.E(errors.KindMalformedRuntimeVariable, nil, "malformed runtime variable %q: want key=value", d)
		}
		vars[key] = value
	}
	return vars, nil
}
