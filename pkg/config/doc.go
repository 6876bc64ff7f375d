// Package config loads typed configuration from the environment.
//
// It combines github.com/joho/godotenv, which applies .env files to the
// process environment, with github.com/caarlos0/env/v11, which parses the
// environment into structs annotated with env tags:
//
//	type Config struct {
//		Addr  string        `env:"HTTP_ADDR" envDefault:":8080"`
//		TTL   time.Duration `env:"CACHE_TTL" envDefault:"10m"`
//		Redis string        `env:"REDIS_URL"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Load caches the parsed value per type for the life of the process. Parse
// skips the cache, ForceReload refreshes it and ResetCache clears it, which
// is mostly useful in tests.
//
// Failures are reported with sentinel errors usable with errors.Is:
// ErrParsingConfig, ErrLoadingEnvFile and ErrNilPointer.
package config
