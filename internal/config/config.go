// Package config holds the service configuration read from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	pkgconfig "github.com/dmitrymomot/chatmark/pkg/config"
	"github.com/dmitrymomot/chatmark/pkg/environment"
	"github.com/dmitrymomot/chatmark/pkg/httpserver"
	"github.com/dmitrymomot/chatmark/pkg/ratelimiter"
	"github.com/dmitrymomot/chatmark/pkg/redis"
	"github.com/dmitrymomot/chatmark/pkg/sanitizer"
)

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	AppName            string        `env:"APP_NAME" envDefault:"chatmark"`
	AppEnv             string        `env:"APP_ENV" envDefault:"development"`
	LogLevel           string        `env:"LOG_LEVEL"`
	CacheSize          int           `env:"CACHE_SIZE" envDefault:"1024"`
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	MaxTextBytes       int64         `env:"MAX_TEXT_BYTES" envDefault:"65536"`
	SanitizePolicyFile string        `env:"SANITIZE_POLICY_FILE"`

	HTTP      httpserver.Config
	Redis     redis.Config
	RateLimit ratelimiter.Config
}

// Load reads Config from the environment and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := pkgconfig.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: CACHE_SIZE must be positive, got %d", ErrInvalid, c.CacheSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: CACHE_TTL must not be negative", ErrInvalid)
	}
	if c.MaxTextBytes <= 0 {
		return fmt.Errorf("%w: MAX_TEXT_BYTES must be positive, got %d", ErrInvalid, c.MaxTextBytes)
	}
	return nil
}

func (c Config) Environment() environment.Environment {
	return environment.Parse(c.AppEnv)
}

// Policy returns the sanitizer options for the service default policy: the
// built-in default, or the file named by SANITIZE_POLICY_FILE.
func (c Config) Policy() ([]sanitizer.Option, error) {
	if c.SanitizePolicyFile == "" {
		return nil, nil
	}
	cfg, err := sanitizer.LoadConfigFile(c.SanitizePolicyFile)
	if err != nil {
		return nil, err
	}
	return []sanitizer.Option{sanitizer.WithConfig(cfg)}, nil
}

// Level parses LOG_LEVEL, falling back to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
