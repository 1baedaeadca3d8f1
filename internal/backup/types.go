package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/aliasx/internal/errors"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// DefaultRetentionCount is the default number of backups kept per scope.
const DefaultRetentionCount = 5

// Backup scopes.
const (
	// ScopeSettings holds snapshots of the alias settings document.
	ScopeSettings = "settings"
	// ScopeProfile holds snapshots of the shell profile edited by activation.
	ScopeProfile = "profile"
)

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the specified scope.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a stored file no longer matches its manifest hash.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrNothingToBackUp indicates none of the requested paths exist yet.
	ErrNothingToBackUp = errors.New("no files to back up")
)

// Manifest describes one backup. It is stored as manifest.json in the backup directory.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Scope     string    `json:"scope"`
	Files     []File    `json:"files"`

	// ToolVersion is the aliasx version that created the backup.
	ToolVersion string `json:"tool_version"`

	// ID is the directory name, e.g. 20260123T100712 or 20260123T100712-2.
	// Populated when loading from disk; not stored in JSON.
	ID string `json:"-"`
}

// File contains metadata for a single backed up file.
type File struct {
	OriginalPath string      `json:"original_path"`
	RelPath      string      `json:"rel_path"`
	SHA256Hash   string      `json:"sha256_hash"`
	Mode         fs.FileMode `json:"mode"`
}
