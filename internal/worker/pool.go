package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed, typically one claim check
// in a batch run.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution.
type Result interface {
	GetError() error
}

// Pool manages a pool of workers that execute jobs concurrently. A
// collector goroutine drains results as they complete, so producers can
// submit an arbitrarily large batch before calling Wait without filling
// the result buffer and deadlocking the workers.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once

	collected    []Result
	collectMu    sync.Mutex
	collectorEnd chan struct{}
}

// NewPool creates a new worker pool with the specified number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:      workers,
		jobQueue:     make(chan Job, workers*2), // Buffered to prevent blocking
		results:      make(chan Result, workers*2),
		ctx:          ctx,
		cancelFunc:   cancel,
		collectorEnd: make(chan struct{}),
	}
}

// Start starts the workers and the result collector.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	go p.collect()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// collect drains results continuously so workers never block on a full
// result buffer regardless of how many jobs were submitted.
func (p *Pool) collect() {
	for result := range p.results {
		p.collectMu.Lock()
		p.collected = append(p.collected, result)
		p.collectMu.Unlock()
	}
	close(p.collectorEnd)
}

// Submit submits a job to the pool for execution.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait waits for all submitted jobs to complete and returns the results.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	<-p.collectorEnd

	p.collectMu.Lock()
	defer p.collectMu.Unlock()
	return p.collected
}

// Shutdown shuts down the worker pool immediately, discarding queued jobs.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
