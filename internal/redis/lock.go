package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrLockNotAcquired = errors.New("instructor lock not acquired")
)

// Locker serializes read-modify-write updates of a single instructor's
// accrued totals across concurrent lesson completions.
type Locker interface {
	WithInstructorLock(ctx context.Context, instructorID uuid.UUID, fn func(ctx context.Context) error) error
}

type redisInstructorLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisInstructorLocker creates a locker that uses a per instructor Redis key
func NewRedisInstructorLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisInstructorLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisInstructorLocker) WithInstructorLock(ctx context.Context, instructorID uuid.UUID, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:instructor:%s", instructorID.String())
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire instructor lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisInstructorLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release instructor lock: %w", err)
	}
	return nil
}
