package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisLocker_AcquireRelease(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisLocker(client, "test:lock:")
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:user:1"))
	assert.Equal(t, defaultLockTTL, mr.TTL("test:lock:user:1"))

	release()
	assert.False(t, mr.Exists("test:lock:user:1"))
}

func TestRedisLocker_TimesOutWhileHeld(t *testing.T) {
	_, client := setupTestRedis(t)
	locker := NewRedisLocker(client, "test:lock:")
	locker.Retry = 5 * time.Millisecond

	release, err := locker.Acquire(context.Background(), "user:1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, "user:1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	other, err := locker.Acquire(context.Background(), "user:2")
	require.NoError(t, err)
	other()
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	mr, client := setupTestRedis(t)
	locker := NewRedisLocker(client, "test:lock:")
	ctx := context.Background()

	stale, err := locker.Acquire(ctx, "user:1")
	require.NoError(t, err)

	// the first holder's lock expires and someone else takes the key
	mr.FastForward(defaultLockTTL + time.Second)
	fresh, err := locker.Acquire(ctx, "user:1")
	require.NoError(t, err)
	holder, err := mr.Get("test:lock:user:1")
	require.NoError(t, err)

	stale()
	got, err := mr.Get("test:lock:user:1")
	require.NoError(t, err)
	assert.Equal(t, holder, got)

	fresh()
	assert.False(t, mr.Exists("test:lock:user:1"))
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	_, client := setupTestRedis(t)
	locker := NewRedisLocker(client, "test:lock:")
	locker.Retry = time.Millisecond

	var (
		wg       sync.WaitGroup
		inside   atomic.Int32
		overlaps atomic.Int32
		done     atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), "user:1")
			if !assert.NoError(t, err) {
				return
			}
			if inside.Add(1) > 1 {
				overlaps.Add(1)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			done.Add(1)
			release()
		}()
	}
	wg.Wait()
	assert.Zero(t, overlaps.Load())
	assert.Equal(t, int32(20), done.Load())
}
