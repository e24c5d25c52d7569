// Package redis creates a verified go-redis client and a health check for it.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	health.Check{Name: "redis", Fn: redis.Healthcheck(client)}
//
// Connect validates the URL (redis:// or rediss://), then pings the server up
// to RetryAttempts times, waiting RetryInterval multiplied by the attempt
// number between tries. The whole process is bounded by ConnectTimeout and by
// ctx.
//
// Errors are stable sentinels usable with errors.Is:
// ErrEmptyConnectionURL, ErrFailedToParseRedisConnString, ErrRedisNotReady and
// ErrHealthcheckFailed.
package redis
