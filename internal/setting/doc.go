// Package setting loads and persists the alias settings document.
//
// The document is TOML:
//
//	[global]
//	script_root = "~/.local/share/aliasx/script"   # optional
//	script_root_env_var_name = "ALIASX_SCRIPT_ROOT" # optional, Windows only
//
//	[alias.default.mapping.ll]
//	cmd = "ls -la"
//
// Before parsing, every {{name}} in the raw text is replaced with the matching
// runtime variable supplied through --define name=value. Substitution is plain
// text replacement with no escaping, so a value containing quotes can change
// the structure of the document. Unknown placeholders are left as they are.
//
// Global values that are absent from the document are filled from platform
// defaults by [Resolve]. The resolved values are never written back.
package setting
