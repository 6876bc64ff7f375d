package redis

import "time"

// Config describes the optional Redis connection used for the render cache.
// An empty ConnectionURL means Redis is not configured.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                               // ConnectionURL in the form "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`     // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`    // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`  // ConnectTimeout bounds the whole connect sequence.
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"chatmark:"` // KeyPrefix is prepended to every key the Store writes.
}

// Enabled reports whether a connection URL is set.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
