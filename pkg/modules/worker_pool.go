package modules

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"qlang/pkg/parser"
)

var (
	errPoolNotStarted = errors.New("worker pool not started")
	errPoolStopped    = errors.New("worker pool stopped")
)

// workerPool parses submitted files on a fixed set of goroutines.
type workerPool struct {
	size   int
	config PoolConfig
	logger logr.Logger

	jobs    chan *ParseJob
	results chan *ParseResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
	stopped atomic.Bool
	pending atomic.Int32

	mu    sync.RWMutex
	stats WorkerPoolStats
}

// NewWorkerPool creates a pool. A non-positive worker count uses one worker
// per CPU.
func NewWorkerPool(config *PoolConfig, logger logr.Logger) ParseWorkerPool {
	size := config.NumWorkers
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &workerPool{
		size:   size,
		config: *config,
		logger: logger.WithName("workers"),
	}
}

func (wp *workerPool) Start(ctx context.Context, numWorkers int) error {
	if !wp.started.CompareAndSwap(false, true) {
		return errors.New("worker pool already started")
	}
	if numWorkers > 0 {
		wp.size = numWorkers
	}

	wp.ctx, wp.cancel = context.WithCancel(ctx)
	wp.jobs = make(chan *ParseJob, wp.config.JobBufferSize)
	wp.results = make(chan *ParseResult, wp.config.ResultBufferSize)
	wp.stats = WorkerPoolStats{WorkerCount: wp.size}

	wp.wg.Add(wp.size)
	for id := 0; id < wp.size; id++ {
		go wp.work(id)
	}

	wp.logger.V(1).Info("worker pool started", "workers", wp.size)
	return nil
}

// Submit queues job, blocking while the queue is full. It fails once the
// pool's context is done.
func (wp *workerPool) Submit(job *ParseJob) error {
	switch {
	case !wp.started.Load():
		return errPoolNotStarted
	case wp.stopped.Load():
		return errPoolStopped
	case wp.ctx.Err() != nil:
		return wp.ctx.Err()
	}

	wp.pending.Add(1)
	select {
	case wp.jobs <- job:
		wp.mu.Lock()
		wp.stats.TotalJobs++
		wp.mu.Unlock()
		return nil
	case <-wp.ctx.Done():
		wp.pending.Add(-1)
		return wp.ctx.Err()
	}
}

// Results is closed by Shutdown once every worker has exited.
func (wp *workerPool) Results() <-chan *ParseResult {
	return wp.results
}

// Shutdown stops accepting jobs and waits for queued ones to finish, or for
// ctx to end.
func (wp *workerPool) Shutdown(ctx context.Context) error {
	if !wp.stopped.CompareAndSwap(false, true) {
		return errors.New("worker pool already stopped")
	}
	close(wp.jobs)

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		wp.cancel()
		close(wp.results)
		wp.logger.V(1).Info("worker pool stopped", "jobs", wp.GetStats().TotalJobs)
		return nil
	case <-ctx.Done():
		wp.cancel()
		return ctx.Err()
	}
}

func (wp *workerPool) HasActiveJobs() bool {
	return wp.pending.Load() > 0
}

func (wp *workerPool) GetStats() WorkerPoolStats {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	stats := wp.stats
	stats.ActiveJobs = int(wp.pending.Load())
	return stats
}

func (wp *workerPool) work(id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			// Dropped unparsed after cancellation.
			if wp.ctx.Err() != nil {
				wp.pending.Add(-1)
				continue
			}

			result := parseJob(job, id)
			wp.record(result)
			wp.logger.V(1).Info("parsed",
				"path", job.Path,
				"worker", id,
				"diagnostics", len(result.Diagnostics),
				"duration", result.ParseDuration)

			select {
			case wp.results <- result:
			case <-wp.ctx.Done():
				return
			}
		}
	}
}

func (wp *workerPool) record(result *ParseResult) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if result.Failed() {
		wp.stats.FailedJobs++
	} else {
		wp.stats.CompletedJobs++
	}
	wp.stats.TotalTime += result.ParseDuration
	wp.stats.AverageTime = wp.stats.TotalTime / time.Duration(wp.stats.CompletedJobs+wp.stats.FailedJobs)
	wp.pending.Add(-1)
}

func parseJob(job *ParseJob, worker int) *ParseResult {
	result := &ParseResult{
		Path:     job.Path,
		Source:   job.Source,
		WorkerID: worker,
	}
	if job.Source == nil {
		result.Error = fmt.Errorf("no source for %s", job.Path)
		result.Timestamp = time.Now()
		return result
	}

	start := time.Now()
	result.AST, result.Diagnostics = parser.Parse(job.Source.Content, job.Options)
	result.ParseDuration = time.Since(start)
	result.Imports = importPaths(result.AST)
	result.Timestamp = time.Now()
	return result
}

// importPaths lists the library paths named by the program's imports.
func importPaths(program *parser.Program) []string {
	if program == nil {
		return nil
	}
	var paths []string
	for _, imp := range program.Imports {
		if imp.Path.Text != "" {
			paths = append(paths, imp.Path.Text)
		}
	}
	return paths
}
