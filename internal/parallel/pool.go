// Package parallel runs independent units of work concurrently with a
// bounded number of goroutines. It backs the demo CLI's scenario runner
// (cmd/seqtheory): each end-to-end scenario builds its own Engine and
// runs FinalCheck to completion, and scenarios share nothing, so running
// them across a small worker pool is safe even though the theory engine
// itself (pkg/theory) is a strictly single-threaded, cooperative
// final-check loop.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool runs submitted tasks across a fixed number of goroutines,
// adapted from the teacher's dynamic worker pool (gitrdm/gokando,
// internal/parallel/pool.go) down to the fixed-size case: the demo CLI
// only ever fans a handful of independent scenarios out at once, so the
// queue-depth-driven scale-up/scale-down machinery the teacher built for
// open-ended goal search has no role to play here.
type WorkerPool struct {
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
	stats        *ExecutionStats
}

// NewWorkerPool creates a worker pool with the given number of workers.
// A non-positive count defaults to the number of CPU cores.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &WorkerPool{
		taskChan:     make(chan func(), workers*4),
		shutdownChan: make(chan struct{}),
		stats:        NewExecutionStats(),
	}
	for i := 0; i < workers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.workerWg.Done()
	for {
		select {
		case task, ok := <-p.taskChan:
			if !ok {
				return
			}
			p.runTask(task)
		case <-p.shutdownChan:
			return
		}
	}
}

func (p *WorkerPool) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.stats.RecordTaskFailed(fmt.Errorf("scenario panicked: %v", r))
		}
	}()
	task()
	p.stats.RecordTaskCompleted()
}

// Submit queues task for execution, blocking until a slot is free, ctx is
// done, or the pool has been shut down.
func (p *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-p.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	p.stats.RecordTaskSubmitted()
	select {
	case p.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops accepting new tasks and waits for in-flight tasks to
// finish. taskChan is deliberately never closed: Submit sends on it
// concurrently with a call to Shutdown, and closing a channel a sender
// may still be writing to races a send against the close, which panics.
// shutdownChan alone is enough to tell both Submit and every worker to
// stop, and closing it exactly once is always safe for any number of
// concurrent receivers.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdownChan)
		p.workerWg.Wait()
	})
}

// Stats returns the pool's execution statistics.
func (p *WorkerPool) Stats() *ExecutionStats { return p.stats }

// ErrPoolShutdown is returned by Submit after Shutdown has been called.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shut down")

// ExecutionStats collects the small set of counters the demo CLI prints
// after running its scenario batch -- trimmed from the teacher's much
// larger ExecutionStats (timing histograms, worker/queue history, scaling
// events) down to the fields a fixed-size pool with no scaling actually
// produces.
type ExecutionStats struct {
	mu             sync.Mutex
	TasksSubmitted int64
	TasksCompleted int64
	TasksFailed    int64
	LastError      error
}

// NewExecutionStats creates a zeroed statistics collector.
func NewExecutionStats() *ExecutionStats { return &ExecutionStats{} }

// RecordTaskSubmitted records that a task was handed to the pool.
func (es *ExecutionStats) RecordTaskSubmitted() {
	es.mu.Lock()
	es.TasksSubmitted++
	es.mu.Unlock()
}

// RecordTaskCompleted records that a task returned without panicking.
func (es *ExecutionStats) RecordTaskCompleted() {
	es.mu.Lock()
	es.TasksCompleted++
	es.mu.Unlock()
}

// RecordTaskFailed records that a task panicked.
func (es *ExecutionStats) RecordTaskFailed(err error) {
	es.mu.Lock()
	es.TasksFailed++
	es.LastError = err
	es.mu.Unlock()
}

// Snapshot returns a copy of the current counters.
func (es *ExecutionStats) Snapshot() ExecutionStats {
	es.mu.Lock()
	defer es.mu.Unlock()
	return ExecutionStats{
		TasksSubmitted: es.TasksSubmitted,
		TasksCompleted: es.TasksCompleted,
		TasksFailed:    es.TasksFailed,
		LastError:      es.LastError,
	}
}
