package lock

import (
	"context"
	"sync"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"
)

// Manager serializes all conflict-sensitive work on a resource. Acquire
// blocks for at most the configured wait and returns a release func that
// must run on every exit path; callers receiving booking.ErrBusy are
// expected to retry with backoff.
type Manager interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type semaphore struct {
	ch   chan struct{}
	refs int
}

// KeyedMutex is the in-process lock table: one exclusive scope per key,
// created at process start and shared for the process lifetime. Sufficient
// for single-node deployments; multi-node deployments need RedisLock.
type KeyedMutex struct {
	mu   sync.Mutex
	sems map[string]*semaphore
	wait time.Duration
}

func NewKeyedMutex(wait time.Duration) *KeyedMutex {
	return &KeyedMutex{
		sems: make(map[string]*semaphore),
		wait: wait,
	}
}

func (k *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	s, ok := k.sems[key]
	if !ok {
		s = &semaphore{ch: make(chan struct{}, 1)}
		k.sems[key] = s
	}
	s.refs++
	k.mu.Unlock()

	timer := time.NewTimer(k.wait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				k.put(key, s)
			})
		}, nil
	case <-timer.C:
		k.put(key, s)
		return nil, booking.ErrBusy
	case <-ctx.Done():
		k.put(key, s)
		return nil, ctx.Err()
	}
}

// put drops a reference and frees the entry once nobody holds or waits on it.
func (k *KeyedMutex) put(key string, s *semaphore) {
	k.mu.Lock()
	s.refs--
	if s.refs == 0 {
		delete(k.sems, key)
	}
	k.mu.Unlock()
}
