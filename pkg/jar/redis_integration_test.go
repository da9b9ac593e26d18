//go:build integration

package jar_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiejar/pkg/jar"
	"github.com/dmitrymomot/cookiejar/pkg/redis"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, redis.Config{URL: url, RetryAttempts: 1})
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
	})

	return client
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("save load delete", func(t *testing.T) {
		t.Parallel()

		store := jar.NewRedisStore(newTestRedisClient(t), jar.WithRedisKey("test-redis-store"))
		created := time.Unix(1_900_000_000, 0)

		require.NoError(t, store.Save(ctx, jar.Record{Name: "b", Value: "2", Created: created.Add(time.Second)}))
		require.NoError(t, store.Save(ctx, jar.Record{Name: "a", Value: "1", Path: "/", Created: created}))
		require.NoError(t, store.Save(ctx, jar.Record{Name: "a", Value: "3", Path: "/", Created: created.Add(time.Hour)}))

		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, "a", records[0].Name)
		require.Equal(t, "3", records[0].Value)
		require.True(t, created.Equal(records[0].Created))

		require.NoError(t, store.Delete(ctx, jar.Key{Name: "a", Path: "/"}))
		records, err = store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "b", records[0].Name)
	})

	t.Run("backs a jar", func(t *testing.T) {
		t.Parallel()

		j := jar.New(jar.NewRedisStore(newTestRedisClient(t), jar.WithRedisKey("test-redis-jar")))
		require.NoError(t, j.Write(ctx, "a=1; max-age=3600"))
		require.NoError(t, j.Write(ctx, "b=2; domain=example.com"))

		raw, err := j.Read(ctx)
		require.NoError(t, err)
		require.Equal(t, "a=1; b=2", raw)
	})

	t.Run("healthcheck", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, redis.Healthcheck(newTestRedisClient(t))(ctx))
	})
}
