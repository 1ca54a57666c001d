package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutexAcquireRelease(t *testing.T) {
	km := NewKeyedMutex(100 * time.Millisecond)

	release, err := km.Acquire(context.Background(), "resource-a")
	require.NoError(t, err)
	release()

	// Reacquirable after release.
	release, err = km.Acquire(context.Background(), "resource-a")
	require.NoError(t, err)
	release()
}

func TestKeyedMutexContentionFailsFast(t *testing.T) {
	km := NewKeyedMutex(50 * time.Millisecond)

	release, err := km.Acquire(context.Background(), "resource-a")
	require.NoError(t, err)
	defer release()

	start := time.Now()
	_, err = km.Acquire(context.Background(), "resource-a")
	assert.ErrorIs(t, err, booking.ErrBusy)
	assert.Less(t, time.Since(start), 500*time.Millisecond, "must fail fast, not queue indefinitely")
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex(50 * time.Millisecond)

	releaseA, err := km.Acquire(context.Background(), "resource-a")
	require.NoError(t, err)
	defer releaseA()

	// Holding one resource's scope never blocks another resource.
	releaseB, err := km.Acquire(context.Background(), "resource-b")
	require.NoError(t, err)
	releaseB()
}

func TestKeyedMutexContextCancellation(t *testing.T) {
	km := NewKeyedMutex(5 * time.Second)

	release, err := km.Acquire(context.Background(), "resource-a")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = km.Acquire(ctx, "resource-a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeyedMutexSerializesWriters(t *testing.T) {
	km := NewKeyedMutex(2 * time.Second)

	var mu sync.Mutex
	var active, maxActive int

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := km.Acquire(context.Background(), "resource-a")
			if err != nil {
				return
			}
			defer release()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "at most one holder inside the scope at a time")
}

func TestKeyedMutexReleaseIsIdempotent(t *testing.T) {
	km := NewKeyedMutex(100 * time.Millisecond)

	release, err := km.Acquire(context.Background(), "resource-a")
	require.NoError(t, err)
	release()
	release() // second call must be harmless

	release, err = km.Acquire(context.Background(), "resource-a")
	require.NoError(t, err)
	release()
}
