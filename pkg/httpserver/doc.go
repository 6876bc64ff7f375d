// Package httpserver runs an http.Handler with graceful shutdown and
// provides liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns when ctx is canceled or the process gets SIGINT or SIGTERM.
// Timeouts come from Config, which is filled from HTTP_* environment
// variables.
package httpserver
