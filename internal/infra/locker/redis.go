package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "gym-booking:lock:"
	retryBackoff = 25 * time.Millisecond
)

// снимаем блокировку, только если она все еще наша (TTL мог истечь и ключ занял другой процесс)
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisLocker распределенная блокировка SET NX PX с токеном владельца
type RedisLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	wait   time.Duration
	logger Logger
}

// NewRedisLocker создает блокировку поверх клиента Redis.
// ttl - время жизни ключа (защита от зависших процессов), wait - сколько ждать занятую блокировку.
func NewRedisLocker(client redis.Cmdable, ttl, wait time.Duration, logger Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		logger: logger,
	}
}

// Acquire пытается занять ключ до истечения wait или отмены контекста
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Release, error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: SetNX %s: %w", ErrLockBackend, redisKey, err)
		}
		if ok {
			return l.release(redisKey, token), nil
		}

		select {
		case <-waitCtx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrLockTimeout, key, waitCtx.Err())
		case <-time.After(retryBackoff):
		}
	}
}

func (l *RedisLocker) release(redisKey, token string) Release {
	var once sync.Once
	return func() {
		once.Do(func() {
			// отдельный контекст: исходный запрос мог уже завершиться
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
				l.logger.Warn("RedisLocker: failed to release %s: %v", redisKey, err)
			}
		})
	}
}
