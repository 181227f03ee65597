// Package worker runs rank-history fetches off the job queue.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/teambalancer/internal/adapters/mq/queue"
	"github.com/okian/teambalancer/internal/domain/model"
	"github.com/okian/teambalancer/pkg/logger"
	"github.com/okian/teambalancer/pkg/metrics"
)

const defaultWorkerName = "worker"

// Fetcher resolves the parsed rank history of one player.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]model.RankRecord, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Result is the outcome of one job. Err is set when History is not.
type Result struct {
	Job     queue.Job
	History []model.RankRecord
	Err     error
}

// Worker processes jobs and publishes their results.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue drains.
	Run(ctx context.Context)

	// Shutdown stops the worker after the job in flight.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker on top of a Queue.
type InMemoryWorker struct {
	queue   Queue
	fetcher Fetcher
	results chan<- Result
	name    string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, f Fetcher, results chan<- Result, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		fetcher:  f,
		results:  results,
		name:     defaultWorkerName,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != defaultWorkerName {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}

			res := w.process(ctx, job)
			select {
			case w.results <- res:
			case <-ctx.Done():
				return
			case <-w.shutdown:
				return
			}
		}
	}
}

// Shutdown stops the worker and waits for Run to return.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job queue.Job) Result {
	start := time.Now()
	history, err := w.fetcher.Fetch(ctx, job.Name)
	if err != nil {
		metrics.RecordErrorByStage("worker", "fetch_failed")
		w.logger.Warn(ctx, "fetch failed",
			logger.String("player", job.Name),
			logger.Int("seq", job.Seq),
			logger.Error(err),
		)
		return Result{Job: job, Err: err}
	}

	w.logger.Debug(ctx, "fetched history",
		logger.String("player", job.Name),
		logger.Int("seasons", len(history)),
		logger.Duration("took", time.Since(start)),
	)
	return Result{Job: job, History: history}
}

// Pool manages multiple workers sharing one queue and one results channel.
type Pool struct {
	workers []*InMemoryWorker
	results chan Result
	wg      sync.WaitGroup

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers. Options apply to every worker.
func NewPool(workerCount int, q Queue, f Fetcher, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		results: make(chan Result, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		wopts := append(append([]Option{}, opts...), WithName("worker-"+strconv.Itoa(i)))
		pool.workers[i] = NewInMemoryWorker(q, f, pool.results, wopts...)
	}

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start runs every worker and returns the shared results channel. The channel
// is closed once all workers have returned.
func (p *Pool) Start(ctx context.Context) <-chan Result {
	metrics.UpdateWorkerActiveCount(len(p.workers))
	p.logger.Debug(ctx, "starting workers", logger.Int("count", len(p.workers)))

	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *InMemoryWorker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}

	go func() {
		p.wg.Wait()
		metrics.UpdateWorkerActiveCount(0)
		close(p.results)
	}()

	return p.results
}

// Shutdown stops every started worker.
func (p *Pool) Shutdown(ctx context.Context) error {
	for i, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return err
		}
	}
	return nil
}
