// ABOUTME: Worker pool for parallel song folder parsing
// ABOUTME: Runs indexed jobs across CPU workers, collecting results in slot order

// Package pool runs independent indexed jobs across a fixed set of worker
// goroutines. Each job writes its result into a dedicated slot, so output
// order matches submission order no matter when workers finish, and a
// cancelled context skips jobs that have not started yet.
package pool

import (
	"context"
	"runtime"
	"sync"
)

type job[T any] struct {
	index int
	run   func() T
}

// WorkerPool executes jobs of type T and keeps one result slot per job
type WorkerPool[T any] struct {
	ctx      context.Context
	jobs     chan job[T]
	results  []T
	workerWg sync.WaitGroup // tracks worker goroutines lifetime
	jobWg    sync.WaitGroup // tracks submitted jobs completion
}

// New creates a worker pool sized to available CPUs with size result slots.
// Jobs submitted after ctx is cancelled are skipped, leaving their slot at
// the zero value.
func New[T any](ctx context.Context, size int) *WorkerPool[T] {
	p := &WorkerPool[T]{
		ctx:     ctx,
		jobs:    make(chan job[T], size),
		results: make([]T, size),
	}

	for range runtime.NumCPU() {
		p.workerWg.Add(1)

		go func() {
			defer p.workerWg.Done()

			for j := range p.jobs {
				if p.ctx.Err() == nil {
					p.results[j.index] = j.run()
				}
				p.jobWg.Done()
			}
		}()
	}

	return p
}

// Submit queues run for execution, storing its result at the given index.
// Each index must be in [0, size) and used at most once.
// Blocks if the job channel is full.
func (p *WorkerPool[T]) Submit(index int, run func() T) {
	p.jobWg.Add(1)
	p.jobs <- job[T]{index: index, run: run}
}

// Wait blocks until all submitted jobs have completed and returns the
// results in index order
func (p *WorkerPool[T]) Wait() []T {
	p.jobWg.Wait()

	return p.results
}

// Close shuts down the worker pool and waits for all workers to exit
func (p *WorkerPool[T]) Close() {
	close(p.jobs)
	p.workerWg.Wait()
}
