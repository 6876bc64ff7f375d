// Package requestid tags every HTTP request with a correlation ID.
//
// Middleware reuses a client-supplied X-Request-ID header when it is short and
// made of letters, digits, '-' and '_'; otherwise it generates a UUIDv7. The
// ID is stored in the request context, echoed in the response header and can
// be added to every log record with LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
