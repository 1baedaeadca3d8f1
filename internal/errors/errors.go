package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, child processes, etc.).
	ExitSystem = 2
)

// Re-exported helpers so callers only import one errors package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested alias, group or backup was not found.
	ErrNotFound = crdb.New("not found")

	// ErrInvalidConfig indicates tool configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// Kind classifies failures of the alias engine.
type Kind string

const (
	KindConfigRead               Kind = "ConfigReadError"
	KindConfigParse              Kind = "ConfigParseError"
	KindConfigWrite              Kind = "ConfigWriteError"
	KindScriptWrite              Kind = "ScriptWriteError"
	KindScriptRemove             Kind = "ScriptRemoveError"
	KindUnsupportedShell         Kind = "UnsupportedShellError"
	KindUnsupportedPlatform      Kind = "UnsupportedPlatformError"
	KindActivation               Kind = "ActivationError"
	KindMalformedRuntimeVariable Kind = "MalformedRuntimeVariable"
	KindInvalidAliasName         Kind = "InvalidAliasName"
)

// AliasError is the tagged error surfaced by every storage-touching operation.
// Match a kind with errors.Is against one of the Err* sentinels below, or
// extract it with KindOf.
type AliasError struct {
	Kind Kind
	Msg  string
	Err  error
}

// Sentinels for errors.Is matching. They carry no message or cause.
var (
	ErrConfigRead               = &AliasError{Kind: KindConfigRead}
	ErrConfigParse              = &AliasError{Kind: KindConfigParse}
	ErrConfigWrite              = &AliasError{Kind: KindConfigWrite}
	ErrScriptWrite              = &AliasError{Kind: KindScriptWrite}
	ErrScriptRemove             = &AliasError{Kind: KindScriptRemove}
	ErrUnsupportedShell         = &AliasError{Kind: KindUnsupportedShell}
	ErrUnsupportedPlatform      = &AliasError{Kind: KindUnsupportedPlatform}
	ErrActivation               = &AliasError{Kind: KindActivation}
	ErrMalformedRuntimeVariable = &AliasError{Kind: KindMalformedRuntimeVariable}
	ErrInvalidAliasName         = &AliasError{Kind: KindInvalidAliasName}
)

// E builds an AliasError of the given kind. err may be nil.
func E(kind Kind, err error, format string, args ...any) *AliasError {
	return &AliasError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

func (e *AliasError) Error() string {
	switch {
	case e.Msg == "" && e.Err == nil:
		return string(e.Kind)
	case e.Err == nil:
		return e.Msg
	case e.Msg == "":
		return e.Err.Error()
	default:
		return e.Msg + ": " + e.Err.Error()
	}
}

// Unwrap returns the underlying cause.
func (e *AliasError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AliasError sentinel of the same kind.
func (e *AliasError) Is(target error) bool {
	t, ok := target.(*AliasError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// KindOf returns the kind of the first AliasError in err's chain, or "" if none.
func KindOf(err error) Kind {
	var ae *AliasError
	if crdb.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: aliasx doctor",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor picks the process exit code for err.
// An ExitError anywhere in the chain wins; otherwise the alias error kind decides.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	switch KindOf(err) {
	case KindConfigParse, KindUnsupportedShell, KindUnsupportedPlatform,
		KindMalformedRuntimeVariable, KindInvalidAliasName:
		return ExitUser
	case "":
		return ExitUser
	default:
		return ExitSystem
	}
}

// SuggestionFor returns the user-facing hint attached to err, if any.
func SuggestionFor(err error) string {
	var exitErr *ExitError
	if crdb.As(err, &exitErr) && exitErr.Suggestion != "" {
		return exitErr.Suggestion
	}
	switch KindOf(err) {
	case KindConfigParse:
		return "Fix the settings file or run: aliasx doctor"
	case KindScriptWrite, KindScriptRemove:
		return "Scripts may be out of sync. Run: aliasx rebuild"
	case KindUnsupportedShell:
		return "Set ALIASX_SHELL to one of: zsh, bash, ksh, csh, dash, tcsh"
	case KindMalformedRuntimeVariable:
		return "Use --define key=value"
	}
	return ""
}
