package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolBounded(t *testing.T) {
	wp := New(context.Background(), 3)
	assert.Equal(t, 3, wp.Size())

	var running, peak, done int32
	for i := 0; i < 20; i++ {
		err := wp.Go(func(ctx context.Context) error {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&running, -1)
			atomic.AddInt32(&done, 1)
			return nil
		})
		assert.NoError(t, err)
	}

	assert.NoError(t, wp.Wait())
	assert.Equal(t, int32(20), done)
	assert.True(t, peak <= 3)
}

func TestWorkerPoolDefaultSize(t *testing.T) {
	wp := New(context.Background(), 0)
	assert.Equal(t, runtime.NumCPU(), wp.Size())
	assert.NoError(t, wp.Wait())
}

func TestWorkerPoolError(t *testing.T) {
	errBoom := errors.New("boom")
	wp := New(context.Background(), 1)

	err := wp.Go(func(ctx context.Context) error {
		return errBoom
	})
	assert.NoError(t, err)

	<-wp.Context().Done()
	err = wp.Go(func(ctx context.Context) error {
		t.Error("task started after cancellation")
		return nil
	})
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, errBoom, wp.Wait())
}

func TestWorkerPoolParentCancel(t *testing.T) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	wp := New(ctx, 1)

	block := make(chan struct{})
	err := wp.Go(func(ctx context.Context) error {
		<-block
		return nil
	})
	assert.NoError(t, err)

	cancelFunc()
	err = wp.Go(func(ctx context.Context) error {
		return nil
	})
	assert.Equal(t, context.Canceled, err)

	close(block)
	assert.NoError(t, wp.Wait())
}
