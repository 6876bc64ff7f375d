// Package redis connects to Redis and exposes it as a shared render cache.
//
// Connect parses a redis:// URL and pings the server, retrying according to
// Config. Healthcheck turns a client into a readiness probe. Store is a small
// prefixed string store whose Get/Set signatures match the in-process
// cache.MemoryStore, so either can back the renderer's output cache.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewStore(client, cfg.KeyPrefix)
//
// Configuration fields are read from the environment with caarlos0/env:
// REDIS_URL, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL,
// REDIS_CONNECT_TIMEOUT and REDIS_KEY_PREFIX. Leaving REDIS_URL empty
// disables Redis.
package redis
