// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*router.Context])
//	r.Get("/health/ready", health.Readiness[*router.Context](log,
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//		health.Check{Name: "upstream", Fn: upstream.Ping},
//	))
//
// Readiness runs every check concurrently and answers 503 if any of them
// fails or does not finish within DefaultCheckTimeout.
package health
