package locker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/gym-booking-service/pkg/logger"
)

// fakeRedis реализует только SET NX и EVALSHA скрипта освобождения
type fakeRedis struct {
	redis.Cmdable

	mu       sync.Mutex
	keys     map[string]string
	setErr   error
	releases int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: make(map[string]string)}
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if f.setErr != nil {
		cmd.SetErr(f.setErr)
		return cmd
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; ok {
		cmd.SetVal(false)
		return cmd
	}
	f.keys[key] = value.(string)
	cmd.SetVal(true)
	return cmd
}

func (f *fakeRedis) EvalSha(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	cmd := redis.NewCmd(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	if f.keys[keys[0]] == args[0].(string) {
		delete(f.keys, keys[0])
		cmd.SetVal(int64(1))
		return cmd
	}
	cmd.SetVal(int64(0))
	return cmd
}

func (f *fakeRedis) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keys[keyPrefix+key]
	return ok
}

func newRedisLocker(client *fakeRedis) *RedisLocker {
	return NewRedisLocker(client, time.Second, 80*time.Millisecond, logger.NewWithWriter(io.Discard, logger.LevelInfo))
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	client := newFakeRedis()
	l := newRedisLocker(client)

	release, err := l.Acquire(context.Background(), "eq-1")
	require.NoError(t, err)
	assert.True(t, client.has("eq-1"))

	release()
	release()
	assert.False(t, client.has("eq-1"))

	release, err = l.Acquire(context.Background(), "eq-1")
	require.NoError(t, err)
	release()
}

func TestRedisLocker_Timeout(t *testing.T) {
	client := newFakeRedis()
	l := newRedisLocker(client)

	release, err := l.Acquire(context.Background(), "eq-1")
	require.NoError(t, err)
	defer release()

	_, err = l.Acquire(context.Background(), "eq-1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	other, err := l.Acquire(context.Background(), "eq-2")
	require.NoError(t, err)
	other()
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	client := newFakeRedis()
	l := newRedisLocker(client)

	release, err := l.Acquire(context.Background(), "eq-1")
	require.NoError(t, err)

	// TTL истек, ключ занял другой процесс
	client.mu.Lock()
	client.keys[keyPrefix+"eq-1"] = "someone-else"
	client.mu.Unlock()

	release()
	assert.True(t, client.has("eq-1"))
}

func TestRedisLocker_BackendError(t *testing.T) {
	client := newFakeRedis()
	client.setErr = errors.New("connection refused")

	_, err := newRedisLocker(client).Acquire(context.Background(), "eq-1")
	assert.ErrorIs(t, err, ErrLockBackend)
}

func TestRedisLocker_ConcurrentReleaseRunsOnce(t *testing.T) {
	client := newFakeRedis()
	l := newRedisLocker(client)

	release, err := l.Acquire(context.Background(), "eq-1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release()
		}()
	}
	wg.Wait()

	assert.False(t, client.has("eq-1"))
	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Equal(t, 1, client.releases)
}
