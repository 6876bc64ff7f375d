// Package environment names the deployment environment (development, staging
// or production) and carries it through request contexts so that handlers
// and log records can pick it up.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
package environment
