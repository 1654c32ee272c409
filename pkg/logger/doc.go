// Package logger provides a context-aware wrapper around Go's slog package
// with functional options, attribute helpers for the ID card domain and
// redaction of sensitive attributes.
//
// New creates a *slog.Logger whose handler (text or JSON) is wrapped by
// LogHandlerDecorator. The decorator injects attributes pulled from the
// context (for example the scanning device id) and masks the values of
// attributes whose key is listed as sensitive ("secret", "token", "password"
// and "key" by default), so a misplaced log call cannot leak the sealing
// secret or a full card token.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "idcard"),
//	    logger.WithContextValue("scanner_id", scannerKey{}),
//	)
//	log.WarnContext(ctx, "card token failed integrity check",
//	    logger.Stage("hmac"),
//	    logger.Error(err),
//	)
//
// Error returns an empty attribute for a nil error, which slog drops, so it
// can be passed without a nil check.
package logger
