// Package logging provides structured logging for the aliasx CLI using slog.
//
// Levels follow the -v count: warnings only by default, then info, debug and
// [LevelTrace]. Trace output includes generated script bodies and the output
// of the child shell that re-sources a profile.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbose),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Info("committed", "aliases", n)
//
// # Redaction
//
// Both the text handler and JSON output pass attributes through [Redact]. Keys
// that look like secrets are masked outright. String values are scanned word
// by word so an alias command keeps its shape while embedded tokens are hidden.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework.
package logging
