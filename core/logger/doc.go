// Package logger builds slog loggers and provides attribute helpers with
// stable keys.
//
//	log := logger.New(
//		logger.WithDevelopment("relay"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("server starting", logger.Component("server"), logger.Event("startup"))
//
// Presets:
//
//   - WithDevelopment: text output, debug level, "env=development"
//   - WithStaging: JSON output, info level, "env=staging"
//   - WithProduction: JSON output, info level, "env=production"
//
// WithContextExtractors adds attributes pulled from the context passed to
// the *Context logging methods, such as the request ID set by middleware.
//
// Attribute helpers return an empty slog.Attr for empty input, which slog
// drops, so callers can pass them unconditionally:
//
//	log.Error("upstream call failed", logger.Error(err), logger.RequestID(id))
package logger
