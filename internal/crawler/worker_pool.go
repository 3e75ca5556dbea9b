package crawler

import (
	"context"
	"errors"
	"sync"
)

type task func(ctx context.Context)

// WorkerPool runs crawl tasks on a fixed set of goroutines with a bounded
// queue. The queue is sized to the frontier budget, so Submit never blocks
// for the lifetime of a crawl. Workers drain the queue even after the context
// cancels; tasks are expected to check the context themselves and return
// early, which keeps completion accounting intact under cancellation.
type WorkerPool struct {
	ctx   context.Context
	tasks chan task
	wg    sync.WaitGroup
}

// NewWorkerPool creates a pool with the given concurrency and queue size.
func NewWorkerPool(ctx context.Context, concurrency, queueSize int) (*WorkerPool, error) {
	if concurrency <= 0 || queueSize <= 0 {
		return nil, errors.New("worker pool requires positive concurrency and queue size")
	}
	pool := &WorkerPool{
		ctx:   ctx,
		tasks: make(chan task, queueSize),
	}
	pool.start(concurrency)
	return pool, nil
}

func (p *WorkerPool) start(concurrency int) {
	for i := 0; i < concurrency; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.tasks {
				task(p.ctx)
			}
		}()
	}
}

// Submit schedules a task, rejecting if the queue is full. Must not be called
// after Close.
func (p *WorkerPool) Submit(fn task) error {
	select {
	case p.tasks <- fn:
		return nil
	default:
		return errors.New("worker pool queue full")
	}
}

// Close stops accepting tasks and waits for queued work to drain.
func (p *WorkerPool) Close() {
	close(p.tasks)
	p.wg.Wait()
}
