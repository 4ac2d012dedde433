package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

type indexedJob struct {
	index int
	job   Job
}

// Pool runs jobs on a fixed number of workers and returns results in
// submission order
type Pool struct {
	workers    int
	jobQueue   chan indexedJob
	results    []Result
	mu         sync.Mutex
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool bound to ctx; cancelling ctx stops the workers
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan indexedJob, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case ij, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := ij.job.Execute(p.ctx)
			p.mu.Lock()
			p.results[ij.index] = result
			p.mu.Unlock()
		}
	}
}

// Submit queues a job. It returns false once the pool has been cancelled.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}

	p.mu.Lock()
	index := len(p.results)
	p.results = append(p.results, nil)
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- indexedJob{index: index, job: job}:
		return true
	}
}

// Wait must be called once, after the last Submit. It closes the queue, waits for the workers and returns the results of
// every job that ran, in submission order
func (p *Pool) Wait() []Result {
	p.closeQueue()
	p.wg.Wait()
	p.cancelFunc()

	p.mu.Lock()
	defer p.mu.Unlock()
	results := make([]Result, 0, len(p.results))
	for _, r := range p.results {
		if r != nil {
			results = append(results, r)
		}
	}
	return results
}

// Shutdown stops the workers without waiting for queued jobs. Queued jobs
// are dropped; Submit returns false afterwards.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
}

func (p *Pool) closeQueue() {
	p.closeOnce.Do(func() {
		close(p.jobQueue)
	})
}
