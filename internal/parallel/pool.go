// Package parallel runs indexed jobs on a small work-stealing pool.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for independent jobs.
//
// Each worker has its own queue and steals from the others when its queue
// runs dry, so one slow job does not hold up the rest.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.workQueues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case work := <-own:
			work()
		default:
			if work := p.steal(id); work != nil {
				work()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Map calls fn(i) for every i in [0, n) across the workers and waits for
// all of them. It returns the error of the lowest failing index, so the
// result does not depend on scheduling. A closed pool runs the jobs on the
// calling goroutine.
func (p *WorkerPool) Map(n int, fn func(i int) error) error {
	errs := make([]error, n)
	if !p.running.Load() {
		for i := range n {
			errs[i] = fn(i)
		}
		return first(errs)
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		job := func() {
			defer wg.Done()
			errs[i] = fn(i)
		}
		select {
		case p.workQueues[i%p.workers] <- job:
		case <-p.done:
			job()
		}
	}
	wg.Wait()
	return first(errs)
}

func first(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Close stops the workers after the jobs already queued have run. It must
// not race with Map. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
