// Package redis holds the Redis-backed pieces of the API: the connection
// bootstrap below and the login attempt limiter. Redis is load-bearing at
// startup and in the readiness probe only; at request time the limiter
// treats it as advisory.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config captures the settings for the Redis connection shared by the login
// limiter and the readiness probe.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises the client and verifies connectivity with a ping so a
// misconfigured address fails the process at startup instead of surfacing as
// silent limiter misses. A default ping timeout is applied when none is
// provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
