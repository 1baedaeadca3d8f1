package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/script"
	"github.com/thoreinstein/aliasx/internal/shell"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates the version field is not one this build reads.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidShell indicates the shell override names a shell without a profile mapping.
	ErrInvalidShell = errors.New("invalid shell")

	// ErrInvalidCodePage indicates the code page override has no encoder.
	ErrInvalidCodePage = errors.New("unsupported code page")

	// ErrInvalidRetention indicates a negative backup retention.
	ErrInvalidRetention = errors.New("backup retention must be >= 0")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, &FieldError{Field: "version", Value: fmt.Sprint(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if cfg.Shell != "" && !shell.Supported(cfg.Shell) {
		errs = append(errs, &FieldError{Field: "shell", Value: cfg.Shell, Err: ErrInvalidShell})
	}

	if cfg.CodePage != 0 && !script.SupportedCodePage(cfg.CodePage) {
		errs = append(errs, &FieldError{Field: "code_page", Value: fmt.Sprint(cfg.CodePage), Err: ErrInvalidCodePage})
	}

	if cfg.Backup.Retention < 0 {
		errs = append(errs, &FieldError{Field: "backup.retention", Value: fmt.Sprint(cfg.Backup.Retention), Err: ErrInvalidRetention})
	}

	if err := validatePath(cfg.SettingPath); err != nil {
		errs = append(errs, &FieldError{Field: "setting_path", Value: cfg.SettingPath, Err: err})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents a validation error for a specific config key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
