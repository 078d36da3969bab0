// Package parallel provides the worker pool the CPU density engine uses to
// spread row batches across cores.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines consuming batch tasks from a
// shared queue. Density row batches have uniform cost (every cell visits
// every drop point), so a single shared queue balances well without
// work stealing.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	tasks   chan task
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

type task struct {
	ctx context.Context
	fn  func(ctx context.Context)
	wg  *sync.WaitGroup
}

// New creates a pool with the given number of workers. If workers is 0 or
// negative, GOMAXPROCS is used. Workers start immediately.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		tasks:   make(chan task, workers*4),
		done:    make(chan struct{}),
	}
	p.running.Store(true)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.drain()
			return
		case t := <-p.tasks:
			// A cancelled context skips the work but still signals
			// completion, so Run never deadlocks on cancellation.
			if t.ctx.Err() == nil {
				t.fn(t.ctx)
			}
			t.wg.Done()
		}
	}
}

// drain signals completion for tasks still queued at shutdown so no Run
// call is left waiting.
func (p *Pool) drain() {
	for {
		select {
		case t := <-p.tasks:
			t.wg.Done()
		default:
			return
		}
	}
}

// Run submits every task and blocks until all have completed or been
// skipped due to context cancellation. Tasks may execute in any order.
// If the pool is closed, tasks run inline on the calling goroutine.
func (p *Pool) Run(ctx context.Context, fns []func(ctx context.Context)) {
	if len(fns) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range fns {
			if ctx.Err() != nil {
				return
			}
			fn(ctx)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(fns))
	for _, fn := range fns {
		select {
		case p.tasks <- task{ctx: ctx, fn: fn, wg: &wg}:
		case <-p.done:
			// Pool closed mid-submit; run inline.
			if ctx.Err() == nil {
				fn(ctx)
			}
			wg.Done()
		}
	}
	wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int { return p.workers }

// Close stops all workers. Tasks already started finish; queued tasks that
// have not started are dropped but still signalled, so no Run call is left
// waiting. Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
