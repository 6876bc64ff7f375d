package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/chatmark"
	"github.com/dmitrymomot/chatmark/internal/api"
	"github.com/dmitrymomot/chatmark/internal/config"
	"github.com/dmitrymomot/chatmark/pkg/cache"
	"github.com/dmitrymomot/chatmark/pkg/httpserver"
	"github.com/dmitrymomot/chatmark/pkg/logger"
	"github.com/dmitrymomot/chatmark/pkg/ratelimiter"
	"github.com/dmitrymomot/chatmark/pkg/redis"
	"github.com/dmitrymomot/chatmark/pkg/requestid"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render and preview service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")

	return cmd
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Environment(), cfg.AppName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(cfg.Level()))
	}
	return logger.New(opts...)
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	renderCache, readyChecks, closeCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	renderer := chatmark.NewRenderer(
		chatmark.WithLogger(log),
		chatmark.WithSanitizeOptions(policy...),
		chatmark.WithCache(renderCache),
		chatmark.WithCacheTTL(cfg.CacheTTL),
	)
	if err := renderer.Config().Validate(); err != nil {
		return err
	}

	routerOpts := api.RouterOptions{
		Renderer:     renderer,
		Logger:       log,
		Environment:  cfg.Environment(),
		MaxTextBytes: cfg.MaxTextBytes,
		ReadyChecks:  readyChecks,
	}
	if cfg.RateLimit.Enabled() {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()
		limiter, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			return err
		}
		routerOpts.RateLimiter = limiter
	}
	router := api.Router(routerOpts)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// openCache returns the Redis store when REDIS_URL is set and the in-process
// store otherwise.
func openCache(ctx context.Context, cfg config.Config, log *slog.Logger) (chatmark.Cache, []func(context.Context) error, func(), error) {
	if !cfg.Redis.Enabled() {
		store, err := cache.NewMemoryStore(cfg.CacheSize)
		if err != nil {
			return nil, nil, nil, err
		}
		log.InfoContext(ctx, "using in-memory render cache", logger.Component("cache"), slog.Int("size", cfg.CacheSize))
		return store, nil, func() {}, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, errors.Join(chatmark.ErrCacheUnavailable, err)
	}
	store := redis.NewStore(client, cfg.Redis.KeyPrefix)
	log.InfoContext(ctx, "using redis render cache", logger.Component("cache"))

	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close redis", logger.Error(err))
		}
	}
	return store, []func(context.Context) error{redis.Healthcheck(client)}, closeFn, nil
}
