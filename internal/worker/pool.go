// Package worker runs suggestion requests in the background so the console
// stays responsive while a provider is thinking.
package worker

import (
	"context"
	"sync"

	"github.com/ewilliams-labs/vibestudio/internal/logger"
)

var log = logger.For("worker")

// Job is one unit of background work. Run receives a context that is
// cancelled when the pool stops.
type Job struct {
	Name string
	Run  func(ctx context.Context)
}

// Pool manages background workers for async jobs.
type Pool struct {
	jobs   chan Job
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a worker pool with the given queue size.
func NewPool(queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{jobs: make(chan Job, queueSize), ctx: ctx, cancel: cancel}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop cancels running jobs, closes the queue and waits for the workers.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.cancel()
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

// Submit queues a job without blocking. It reports false when the queue is
// full or the pool is stopped.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		log.Warnf("dropping job %s: pool stopped", job.Name)
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		log.Warnf("dropping job %s: queue full", job.Name)
		return false
	}
}

func (p *Pool) processJob(job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("job %s panicked: %v", job.Name, r)
		}
	}()
	log.Debugf("running %s", job.Name)
	job.Run(p.ctx)
}
