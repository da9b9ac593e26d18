// Package redis opens go-redis clients for the Redis cookie store.
//
// [Open] parses a redis:// or rediss:// URL, applies the pool settings from
// [Config] and pings the server, retrying with a growing delay so that the
// CLI can start alongside a Redis container that is still booting.
//
// # Configuration
//
//	REDIS_URL             - Connection URL
//	REDIS_POOL_SIZE       - Maximum connections (default: 4)
//	REDIS_MIN_IDLE_CONNS  - Minimum idle connections (default: 0)
//	REDIS_MAX_IDLE_TIME   - Maximum connection idle time (default: 10m)
//	REDIS_MAX_ACTIVE_TIME - Maximum connection lifetime (default: 30m)
//	REDIS_READ_TIMEOUT    - Read timeout (default: 3s)
//	REDIS_WRITE_TIMEOUT   - Write timeout (default: 3s)
//	REDIS_DIAL_TIMEOUT    - Dial timeout (default: 5s)
//	REDIS_RETRY_ATTEMPTS  - Connection attempts (default: 3)
//	REDIS_RETRY_INTERVAL  - Base retry interval (default: 2s)
//
// # Usage
//
//	client, err := redis.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	j := jar.New(jar.NewRedisStore(client))
//
// [Healthcheck] and [Shutdown] return closures for readiness probes and
// cleanup hooks.
package redis
