// Package ratelimiter provides a token bucket limiter and an HTTP middleware
// that applies it per client.
//
// Every key owns a bucket of Capacity tokens. RefillRate tokens are added
// back every RefillInterval, up to Capacity. A request consumes one token
// and is rejected once the bucket is empty.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       30,
//		RefillRate:     1,
//		RefillInterval: 2 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.RemoteIP, nil)).Post("/render", h)
//
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset headers, plus Retry-After when a request is rejected.
package ratelimiter
