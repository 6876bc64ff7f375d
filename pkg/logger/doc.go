// Package logger builds *slog.Logger values with functional options and
// injects request-scoped attributes from context.Context.
//
// New picks a text or JSON handler, attaches static attributes and wraps the
// handler in LogHandlerDecorator, which runs every registered
// ContextExtractor on each record:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "chatmark"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "rendered", logger.Duration(time.Since(start)), logger.CacheHit(false))
//
// The helpers in attr.go keep attribute keys consistent. Error, Errors,
// RequestID and MessageID return an empty Attr for empty input, which slog
// drops, so callers can pass them without nil checks.
package logger
