// Package worker runs background tasks on a fixed set of goroutines fed by
// a bounded queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	ErrQueueFull = errors.New("worker: queue full")
	ErrClosed    = errors.New("worker: pool closed")
)

// Handler processes one task. A returned error is logged and does not stop
// the worker.
type Handler[T any] func(ctx context.Context, id string, payload T) error

type task[T any] struct {
	id      string
	payload T
}

type Pool[T any] struct {
	tasks  chan task[T]
	handle Handler[T]
	group  *errgroup.Group
	ctx    context.Context
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewPool starts workerCount workers reading from a queue of bufferSize
// tasks. ctx is passed to every handler call.
func NewPool[T any](ctx context.Context, workerCount, bufferSize int, handle Handler[T], logger *slog.Logger) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	if bufferSize < 0 {
		bufferSize = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)
	p := &Pool[T]{
		tasks:  make(chan task[T], bufferSize),
		handle: handle,
		group:  g,
		ctx:    gctx,
		logger: logger,
	}

	for i := 0; i < workerCount; i++ {
		g.Go(p.worker)
	}

	return p
}

func (p *Pool[T]) worker() error {
	for t := range p.tasks {
		if err := p.run(t); err != nil {
			p.logger.Warn("background task failed", "task_id", t.id, "error", err)
		}
	}
	return nil
}

// run shields the worker from a panicking handler.
func (p *Pool[T]) run(t task[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.handle(p.ctx, t.id, t.payload)
}

// TrySubmit enqueues a task without blocking. It returns ErrQueueFull when
// the queue is at capacity and ErrClosed after Close.
func (p *Pool[T]) TrySubmit(id string, payload T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.tasks <- task[T]{id: id, payload: payload}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting tasks and waits for queued ones to finish.
func (p *Pool[T]) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	return p.group.Wait()
}
