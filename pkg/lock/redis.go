package lock

import (
	"context"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "booking:lock:"

// releaseScript deletes the lock only when the caller still owns it, so an
// expired-and-reacquired lock is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLock is the shared serialization primitive for multi-node
// deployments: SET NX with a TTL, polled until the bounded wait elapses.
// An in-process mutex cannot prevent cross-node races, this can.
type RedisLock struct {
	client *redis.Client
	wait   time.Duration
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLock(client *redis.Client, wait, ttl time.Duration) *RedisLock {
	return &RedisLock{
		client: client,
		wait:   wait,
		ttl:    ttl,
		retry:  50 * time.Millisecond,
	}
}

func (l *RedisLock) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err()
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, booking.ErrBusy
		}
		select {
		case <-time.After(l.retry):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
