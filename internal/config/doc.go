// Package config handles loading and validating the aliasx tool configuration.
//
// The tool configuration is distinct from the alias settings document: it holds
// preferences for the CLI itself, never alias definitions.
//
// # Configuration File
//
// The default location is <ConfigHome>/aliasx/config.yaml. ALIASX_CONFIG_DIR
// adds a directory searched first. Every key can be overridden from the
// environment with the ALIASX_ prefix, dots replaced by underscores:
//
//	version: 1
//	setting_path: ~/.config/aliasx/alias-setting.toml
//	shell: zsh            # ALIASX_SHELL
//	code_page: 936        # ALIASX_CODE_PAGE
//	clear:
//	  purge: false        # ALIASX_CLEAR_PURGE
//	backup:
//	  enabled: true
//	  retention: 5
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//
// Load validates the result and reports the first problem. Call [Validate]
// directly to collect all of them.
package config
