// Package paths resolves the default locations aliasx reads and writes.
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config, ~/.local/share).
//
//	| What            | Default                                    |
//	|-----------------|--------------------------------------------|
//	| settings        | <ConfigHome>/aliasx/alias-setting.toml     |
//	| tool config     | <ConfigHome>/aliasx/config.yaml            |
//	| backups         | <ConfigHome>/aliasx/backups/               |
//	| script root     | <DataHome>/aliasx/script/                  |
//
// The script root can be overridden per settings document through
// global.script_root; ExpandHome handles a leading "~" in that value.
package paths
