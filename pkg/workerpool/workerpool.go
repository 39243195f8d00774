package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs tasks on at most Size goroutines. The first task to
// return an error cancels the pool context.
type WorkerPool struct {
	eg   *errgroup.Group
	ctx  context.Context
	sema chan struct{}
}

// New creates a pool bound to ctx. A size <= 0 uses runtime.NumCPU().
func New(ctx context.Context, size int) *WorkerPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	return &WorkerPool{
		eg:   eg,
		ctx:  egCtx,
		sema: make(chan struct{}, size),
	}
}

// Size is the maximum number of concurrently running tasks.
func (wp *WorkerPool) Size() int {
	return cap(wp.sema)
}

// Context is done when the parent is cancelled or a task failed.
func (wp *WorkerPool) Context() context.Context {
	return wp.ctx
}

// Go blocks until a slot is free, then runs fn on it.
// Returns the context error if the pool is cancelled first.
func (wp *WorkerPool) Go(fn func(ctx context.Context) error) error {
	if err := wp.ctx.Err(); err != nil {
		return err
	}

	select {
	case wp.sema <- struct{}{}:
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}

	wp.eg.Go(func() error {
		defer func() {
			<-wp.sema
		}()
		return fn(wp.ctx)
	})
	return nil
}

// Wait blocks until all started tasks return.
// Returns the first task error.
func (wp *WorkerPool) Wait() error {
	return wp.eg.Wait()
}
