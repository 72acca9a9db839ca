// Package logger provides a thin factory around Go's slog package with
// functional options and helper attribute constructors.
//
// SecurePipe never returns the cause of a failed decrypt to its caller. The
// cause is reported through a *slog.Logger instead, and this package keeps
// the attribute names used for that channel consistent: Component, Stage,
// TokenVersion, Identity, Error.
//
// # Usage
//
//	import "github.com/dmitrymomot/securepipe/pkg/logger"
//
//	log := logger.New(
//	    logger.WithEnvironment("development"),
//	    logger.WithOutput(os.Stderr),
//	)
//	pipe, err := securepipe.NewString(secret, securepipe.WithLogger(log))
//
// # Configuration
//
//   - WithEnvironment: development uses text at debug level, anything else
//     JSON at info level.
//   - WithFormat, WithTextFormatter, WithJSONFormatter: output format.
//   - WithLevel: minimum level.
//   - WithOutput: destination writer.
//   - WithAttr: static attributes on every record.
//
// Discard returns a logger that drops everything; it is the default for
// SecurePipe instances without an explicit logger.
//
// Secrets, derived keys and plaintext payloads must never be passed to any of
// these helpers.
package logger
