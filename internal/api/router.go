// Package api exposes the renderer over HTTP.
package api

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/chatmark/pkg/environment"
	"github.com/dmitrymomot/chatmark/pkg/httpserver"
	"github.com/dmitrymomot/chatmark/pkg/logger"
	"github.com/dmitrymomot/chatmark/pkg/ratelimiter"
	"github.com/dmitrymomot/chatmark/pkg/requestid"
)

const defaultMaxTextBytes = 64 << 10

// RouterOptions configures the HTTP surface. Renderer is required.
type RouterOptions struct {
	Renderer     Renderer
	Logger       *slog.Logger
	Environment  environment.Environment
	MaxTextBytes int64
	// ReadyChecks run on GET /ready.
	ReadyChecks []func(context.Context) error
	// RateLimiter, when set, limits /render and /preview per client IP.
	RateLimiter ratelimiter.Limiter
}

// Router builds the service routes:
//
//	POST /render   JSON render endpoint
//	GET  /preview  HTML preview page
//	GET  /health   liveness
//	GET  /ready    readiness
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	if opts.MaxTextBytes <= 0 {
		opts.MaxTextBytes = defaultMaxTextBytes
	}
	if opts.Environment == "" {
		opts.Environment = environment.Development
	}

	h := &handlers{
		renderer:     opts.Renderer,
		log:          log,
		maxTextBytes: opts.MaxTextBytes,
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		requestid.Middleware,
		environment.Middleware(opts.Environment),
		requestLogger(log),
		middleware.Recoverer,
	)

	r.Get("/health", httpserver.LivenessHandler())
	r.Get("/ready", httpserver.ReadinessHandler(log, opts.ReadyChecks...))

	r.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(ratelimiter.Middleware(opts.RateLimiter, ratelimiter.RemoteIP, h.tooManyRequests))
		}
		r.Post("/render", h.render)
		r.Get("/preview", h.preview)
	})

	return r
}
