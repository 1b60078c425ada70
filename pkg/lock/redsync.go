package lock

import (
	"context"
	"time"

	"videotube/pkg/logger"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	defaultExpiry = 8 * time.Second
	defaultTries  = 32
)

// RedisLocker spans every replica of a service.
type RedisLocker struct {
	rs     *redsync.Redsync
	prefix string
	logger *logger.Logger
}

func NewRedisLocker(client *redis.Client, prefix string, log *logger.Logger) *RedisLocker {
	pool := goredis.NewPool(client)
	return &RedisLocker{
		rs:     redsync.New(pool),
		prefix: prefix,
		logger: log,
	}
}

func (r *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	mutex := r.rs.NewMutex(r.prefix+key,
		redsync.WithExpiry(defaultExpiry),
		redsync.WithTries(defaultTries),
		redsync.WithRetryDelay(50*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to acquire lock %s", key)
	}

	return func() {
		// A background context so a cancelled request still releases the key.
		if ok, err := mutex.UnlockContext(context.Background()); err != nil || !ok {
			r.logger.Warn("Failed to release lock %s: %v", key, err)
		}
	}, nil
}
