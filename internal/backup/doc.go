// Package backup snapshots files aliasx is about to rewrite so the user can roll
// them back.
//
// Two scopes exist: [ScopeSettings] for the alias settings document before clear
// and import, and [ScopeProfile] for the shell profile before the PATH block is
// appended. Each backup is a directory:
//
//	<ConfigHome>/aliasx/backups/
//	└── {scope}/
//	    └── {timestamp}[-n]/
//	        ├── manifest.json
//	        └── {copied files...}
//
// The manifest records a SHA256 hash per file. [Manager.Restore] verifies every
// hash before writing anything back and fails with [ErrBackupCorrupted] on a
// mismatch.
//
// [Manager.EnsureBackedUp] is the hook used by the engine and the activation
// binder: it backs a scope up at most once per Manager and prunes old backups
// to the retention count.
package backup
