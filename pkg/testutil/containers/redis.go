//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7-alpine"

// RedisContainer is a disposable Redis for ledger lock tests.
type RedisContainer struct {
	Container testcontainers.Container
	URL       string
	Client    *redis.Client
}

// NewRedisContainer boots Redis and returns a connected client. The
// container outlives the test; Ryuk removes it when the binary exits.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	c, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		t.Fatalf("containers: start %s: %v", redisImage, err)
	}
	fail := func(step string, err error) {
		_ = c.Terminate(ctx)
		t.Fatalf("containers: redis %s: %v", step, err)
	}

	url, err := c.ConnectionString(ctx)
	if err != nil {
		fail("connection string", err)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		fail("parse url", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		fail("ping", err)
	}
	return &RedisContainer{Container: c, URL: url, Client: client}
}

// FlushAll wipes the keyspace so suites sharing the container start clean.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushDB(ctx).Err()
}
