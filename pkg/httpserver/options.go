package httpserver

import (
	"log/slog"
	"net"
	"time"
)

type Option func(*config)

func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { c.readTimeout = max(d, 0) }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) { c.writeTimeout = max(d, 0) }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) { c.idleTimeout = max(d, 0) }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

func WithMaxHeaderBytes(n int) Option {
	return func(c *config) { c.maxHeaderBytes = max(n, 0) }
}

// WithListener serves on an already open listener instead of WithAddr.
func WithListener(ln net.Listener) Option {
	return func(c *config) { c.listener = ln }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
