package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	limitWindow  = 15 * time.Minute
	limitAllowed = 10
)

// LoginLimiter throttles repeated failed logins per email using a Redis
// counter with a sliding expiry. Key format: loginfail:<email>
//
// The limiter is advisory: Redis being down must never block logins, so all
// errors are returned to the caller to be treated as "allowed".
type LoginLimiter struct {
	client *redis.Client
}

func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// Allow reports whether another attempt for this email is permitted.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return true, fmt.Errorf("limiter read: %w", err)
	}
	return n < limitAllowed, nil
}

// NoteFailure records a failed attempt and refreshes the window.
func (l *LoginLimiter) NoteFailure(ctx context.Context, email string) error {
	key := l.key(email)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, limitWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("limiter incr: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(email string) string {
	return "loginfail:" + email
}
