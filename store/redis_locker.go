package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	defaultLockTTL   = 10 * time.Second
	defaultLockRetry = 25 * time.Millisecond
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// releaseScript deletes the lock only if it is still held by our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLocker is a Locker shared by every replica pointing at the same
// redis. A lock expires after TTL so a crashed holder cannot block a key
// forever.
type RedisLocker struct {
	client *redis.Client
	prefix string
	TTL    time.Duration
	Retry  time.Duration
}

func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: prefix,
		TTL:    defaultLockTTL,
		Retry:  defaultLockRetry,
	}
}

func (r *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.Retry)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, lockKey, token, r.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", lockKey, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, lockKey)
		case <-ticker.C:
		}
	}

	return func() {
		// Release must run even when the caller's context is already done.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, r.client, []string{lockKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			log.Printf("redis lock release key=%s: %v", lockKey, err)
		}
	}, nil
}
