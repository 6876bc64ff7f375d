package chatmark

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeebo/blake3"

	"github.com/dmitrymomot/chatmark/pkg/logger"
	"github.com/dmitrymomot/chatmark/pkg/markdown"
	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

// Cache stores rendered HTML by key. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Renderer is a configured render service. It is safe for concurrent use.
type Renderer struct {
	log       *slog.Logger
	base      sanitizer.Config
	cache     Cache
	ttl       time.Duration
	translate func(string) string
	sanitize  func(string, sanitizer.Config) (string, error)
}

type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithSanitizeOptions sets the renderer's default policy overrides. Per-call
// overrides passed to Render are applied on top.
func WithSanitizeOptions(opts ...sanitizer.Option) Option {
	return func(r *Renderer) {
		r.base = sanitizer.Merge(r.base, opts...)
	}
}

func WithCache(c Cache) Option {
	return func(r *Renderer) { r.cache = c }
}

// WithCacheTTL sets how long cached results live. Zero keeps them until the
// cache evicts them.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Renderer) { r.ttl = max(ttl, 0) }
}

// WithTranslator replaces the markdown translator.
func WithTranslator(fn func(string) string) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.translate = fn
		}
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		log:       logger.Nop(),
		base:      sanitizer.DefaultConfig(),
		ttl:       10 * time.Minute,
		translate: markdown.Translate,
		sanitize:  sanitizer.Sanitize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Config returns a copy of the renderer's default policy.
func (r *Renderer) Config() sanitizer.Config {
	return sanitizer.Merge(r.base)
}

// Render renders raw with the renderer's policy merged with opts. An invalid
// policy is returned as a *sanitizer.ConfigError. Any other failure is logged
// and answered with Fallback(raw).
func (r *Renderer) Render(ctx context.Context, raw string, opts ...sanitizer.Option) (string, error) {
	cfg := sanitizer.Merge(r.base, opts...)
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}

	key := cacheKey(cfg, raw)
	if html, ok := r.cached(ctx, key); ok {
		return html, nil
	}

	start := time.Now()
	html, err := r.render(raw, cfg)
	if err != nil {
		r.log.WarnContext(ctx, "render failed, using plain text fallback",
			logger.Component("renderer"),
			logger.Error(err),
			logger.Bytes("input_bytes", len(raw)),
		)
		return Fallback(raw), nil
	}

	r.log.DebugContext(ctx, "rendered",
		logger.Component("renderer"),
		logger.Duration(time.Since(start)),
		logger.Bytes("input_bytes", len(raw)),
		logger.Bytes("output_bytes", len(html)),
		logger.CacheHit(false),
	)
	r.store(ctx, key, html)
	return html, nil
}

func (r *Renderer) render(raw string, cfg sanitizer.Config) (html string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrRenderPanic, p)
		}
	}()

	html, err = r.sanitize(r.translate(raw), cfg)
	if err != nil {
		return "", err
	}
	if err := sanitizer.Verify(html, cfg); err != nil {
		return "", err
	}
	return html, nil
}

func (r *Renderer) cached(ctx context.Context, key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	html, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.WarnContext(ctx, "render cache read failed", logger.Error(errors.Join(ErrCacheUnavailable, err)))
		return "", false
	}
	if ok {
		r.log.DebugContext(ctx, "rendered", logger.Component("renderer"), logger.CacheHit(true))
	}
	return html, ok
}

func (r *Renderer) store(ctx context.Context, key, html string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, html, r.ttl); err != nil {
		r.log.WarnContext(ctx, "render cache write failed", logger.Error(errors.Join(ErrCacheUnavailable, err)))
	}
}

// cacheKey identifies a render result by policy and input.
func cacheKey(cfg sanitizer.Config, raw string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(cfg.Fingerprint()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(raw))
	return "render:" + hex.EncodeToString(h.Sum(nil))
}
