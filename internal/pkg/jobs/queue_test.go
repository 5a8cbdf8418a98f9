package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_ProcessesJobs(t *testing.T) {
	t.Parallel()

	var processed atomic.Int32
	done := make(chan struct{})

	q := NewQueue("test", func(ctx context.Context, job Job) error {
		if processed.Add(1) == 3 {
			close(done)
		}
		return nil
	}, QueueConfig{Workers: 2, BufferSize: 10})

	q.Start(context.Background())
	defer q.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Enqueue(Job{ID: uuid.NewString(), Key: "user-1"}))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("jobs were not processed in time")
	}
	assert.Equal(t, int32(3), processed.Load())
}

func TestQueue_SerializesPerKey(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	inFlight := map[string]int{}
	var overlapped atomic.Bool
	var remaining atomic.Int32
	remaining.Store(20)
	done := make(chan struct{})

	q := NewQueue("test", func(ctx context.Context, job Job) error {
		mu.Lock()
		inFlight[job.Key]++
		if inFlight[job.Key] > 1 {
			overlapped.Store(true)
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight[job.Key]--
		mu.Unlock()

		if remaining.Add(-1) == 0 {
			close(done)
		}
		return nil
	}, QueueConfig{Workers: 8, BufferSize: 64})

	q.Start(context.Background())
	defer q.Stop()

	// Two keys, ten jobs each, spread across eight workers.
	for i := 0; i < 10; i++ {
		require.NoError(t, q.Enqueue(Job{ID: uuid.NewString(), Key: "user-a"}))
		require.NoError(t, q.Enqueue(Job{ID: uuid.NewString(), Key: "user-b"}))
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs were not processed in time")
	}
	assert.False(t, overlapped.Load(), "jobs sharing a key must not run concurrently")
}

func TestQueue_EnqueueBeforeStart(t *testing.T) {
	t.Parallel()

	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	err := q.Enqueue(Job{ID: "x", Key: "k"})
	assert.Error(t, err)
}

func TestQueue_DropsWhenFull(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		<-block
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})

	q.Start(context.Background())
	defer func() {
		close(block)
		q.Stop()
	}()

	// First job occupies the worker, second fills the buffer; eventually
	// an enqueue must fail rather than block the caller.
	var sawDrop bool
	for i := 0; i < 4; i++ {
		if err := q.Enqueue(Job{ID: uuid.NewString(), Key: "k"}); err != nil {
			sawDrop = true
			break
		}
	}
	assert.True(t, sawDrop, "a full queue should drop instead of blocking")
}
