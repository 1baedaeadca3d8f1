// Package errors provides error handling conventions for the aliasx CLI.
//
// Every operation of the alias engine that touches storage, scripts or the
// user's environment fails with an [AliasError] tagged by a [Kind]. Callers
// match a kind with [Is] against the sentinel values:
//
//	if errors.Is(err, aliaserrors.ErrConfigParse) {
//	    // the settings document is malformed
//	}
//
// # Wrapping
//
// The package re-exports the cockroachdb/errors helpers ([Wrap], [Wrapf],
// [Newf], ...) so call sites import a single errors package.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (bad input, unsupported shell, malformed settings)
//   - ExitSystem (2): System-related error (I/O, child processes, registry)
//
// [ExitCodeFor] maps any error to one of these codes, honouring an
// [ExitError] anywhere in the chain.
package errors
