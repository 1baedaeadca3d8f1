package alias

import (
	"strings"
	"unicode"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// reservedNames are device names Windows refuses as file names, with or
// without an extension. They are rejected everywhere so a settings file stays
// portable.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// ValidateName checks that alias can be used as a script file name.
func ValidateName(alias string) error {
	switch {
	case alias == "":
		return errors.E(errors.KindInvalidAliasName, nil, "alias name is empty")
	case strings.ContainsAny(alias, `/\`):
		return errors.E(errors.KindInvalidAliasName, nil, "alias name %q contains a path separator", alias)
	case strings.HasPrefix(alias, "."), strings.HasPrefix(alias, "-"):
		return errors.E(errors.KindInvalidAliasName, nil, "alias name %q must not start with %q", alias, alias[:1])
	case strings.ContainsFunc(alias, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }):
		return errors.E(errors.KindInvalidAliasName, nil, "alias name %q contains whitespace or control characters", alias)
	}

	base := strings.ToUpper(alias)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if reservedNames[base] {
		return errors.E(errors.KindInvalidAliasName, nil, "alias name %q is a reserved device name", alias)
	}
	return nil
}

// normalizeGroup maps an empty group to the default group.
func normalizeGroup(group string) string {
	if group == "" {
		return defaultGroup
	}
	return group
}
