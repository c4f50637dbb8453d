package worker

import (
	"context"
	"sync"
)

// Job is a unit of work the pool can run, typically one claim
// assessment
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces; errors ride inside the result so a
// failed claim never stops the batch
type Result interface {
	GetError() error
}

// Pool runs jobs across a fixed set of workers. Intended use: Start,
// Submit everything, then Wait exactly once.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given number of workers. Fewer than
// one worker is clamped to one.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2), // Buffered to keep submitters moving
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers
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

// Submit queues a job. Submitting after Shutdown is a no-op; submitting
// after Wait has been called is a caller bug.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it, and returns
// every result. Completion order, not submission order.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown cancels in-flight jobs and stops the workers without
// collecting results
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
