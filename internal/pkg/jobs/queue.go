// Package jobs provides a small in-memory background task dispatcher. Work is
// handed off after the triggering request has completed, so handlers never
// wait on it and failures never surface to callers.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job is a queued background task. Key identifies the serialization domain:
// two jobs with the same Key never run concurrently.
type Job struct {
	ID       string
	Key      string
	Payload  interface{}
	Enqueued time.Time
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	Delay      time.Duration
}

// Queue is a keyed goroutine-backed dispatcher. Jobs with distinct keys run
// concurrently across the worker pool; jobs sharing a key are serialized by a
// per-key lock so a read-decide-write handler cannot race itself.
type Queue struct {
	name    string
	handler Handler

	workers    int
	bufferSize int
	delay      time.Duration

	keyLocks sync.Map // key string -> *sync.Mutex

	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}

	return &Queue{
		name:       name,
		handler:    handler,
		workers:    cfg.Workers,
		bufferSize: cfg.BufferSize,
		delay:      cfg.Delay,
		jobs:       make(chan Job, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	slog.Info("Job queue started", "queue", q.name, "workers", q.workers)
}

// Stop cancels workers and waits for them to exit.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.started {
		q.mu.Unlock()
		return
	}
	q.cancel()
	q.mu.Unlock()
	q.wg.Wait()
	slog.Info("Job queue stopped", "queue", q.name)
}

// Enqueue pushes a job onto the queue without blocking the caller. A full
// buffer drops the job: every consumer of this queue is a best-effort
// reconciliation that the next trigger will redo.
func (q *Queue) Enqueue(job Job) error {
	q.mu.Lock()
	ctx := q.ctx
	started := q.started
	q.mu.Unlock()

	if !started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now()
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, ctx.Err())
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("queue %s full, dropping job %s", q.name, job.ID)
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			q.process(job)
		}
	}
}

func (q *Queue) process(job Job) {
	if q.delay > 0 {
		// Let the triggering write settle before reading it back.
		timer := time.NewTimer(q.delay)
		select {
		case <-q.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}

	lock := q.lockFor(job.Key)
	lock.Lock()
	defer lock.Unlock()

	if err := q.handler(q.ctx, job); err != nil {
		slog.Error("Job failed", "queue", q.name, "job_id", job.ID, "key", job.Key, "error", err)
	}
}

func (q *Queue) lockFor(key string) *sync.Mutex {
	actual, _ := q.keyLocks.LoadOrStore(key, &sync.Mutex{})
	return actual.(*sync.Mutex)
}
