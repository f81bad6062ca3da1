package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// GetSessionStoreClient returns a redis client pointed at the session store
// used by integration-style tests, configured via NUTRIVIEW_REDIS_HOST,
// NUTRIVIEW_REDIS_PORT and NUTRIVIEW_REDIS_PASS. When no redis is reachable
// the calling test is skipped, so the suite stays runnable without
// infrastructure.
func GetSessionStoreClient(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	redisHost := os.Getenv("NUTRIVIEW_REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisPort := os.Getenv("NUTRIVIEW_REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}
	t.Logf("using redis: [%s:%s]", redisHost, redisPort)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(redisHost, redisPort),
		Password: os.Getenv("NUTRIVIEW_REDIS_PASS"),
		DB:       0, // use default DB
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		if closeErr := rdb.Close(); closeErr != nil {
			t.Logf("close redis client: %s", closeErr)
		}
		t.Skipf("redis not reachable at %s:%s, skipping: %s", redisHost, redisPort, err)
	}

	return ctx, rdb
}
