// Package redis implements the token denylist on a shared Redis instance,
// letting revocation survive restarts and span replicas.
package redis

import (
	"context"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

const keyPrefix = "simplyblog:revoked:"

// Denylist records revoked tokens as keys expiring with the token itself.
type Denylist struct {
	client  *redislib.Client
	timeout time.Duration
}

// NewDenylist connects to Redis and verifies the connection.
func NewDenylist(addr, password string) (*Denylist, error) {
	client := redislib.NewClient(&redislib.Options{Addr: addr, Password: password})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Denylist{client: client, timeout: 250 * time.Millisecond}, nil
}

// Revoke marks the token rejected until the given instant. The key carries
// its own TTL, so no sweeping is needed on this backend.
func (d *Denylist) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.client.Set(ctx, keyPrefix+token, 1, ttl).Err()
}

// Revoked reports whether the token is currently revoked.
func (d *Denylist) Revoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	n, err := d.client.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired is a no-op; Redis expires the keys itself.
func (d *Denylist) PurgeExpired(ctx context.Context) error {
	return nil
}

// Close releases the Redis connection.
func (d *Denylist) Close() error {
	return d.client.Close()
}
