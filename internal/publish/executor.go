package publish

import (
	"sync"
	"time"

	"github.com/runtofuture/ethereumj/internal/logging"
)

// Executor runs dispatch tasks according to its own scheduling policy. The
// bus submits a task and returns; completion is not guaranteed to be
// synchronous. Delivery ordering across publish calls is whatever the
// executor provides: CallerRuns and DispatchQueue serialize, WorkerPool does
// not.
type Executor interface {
	Execute(t Task)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(Task)

func (f ExecutorFunc) Execute(t Task) { f(t) }

// CallerRuns executes every task synchronously on the publishing goroutine.
// Useful for deterministic tests and single-threaded embedders.
type CallerRuns struct{}

func (CallerRuns) Execute(t Task) { t.Run() }

// slowTaskThreshold is how long a task may run on the dispatch goroutine
// before a warning is logged.
const slowTaskThreshold = time.Second

// DispatchQueue funnels all tasks through a single goroutine, so events are
// delivered in exactly the order they were published, across all categories.
// Execute blocks once the queue is full; bounding is the embedder's choice
// via queue size.
type DispatchQueue struct {
	tasks chan Task
	done  chan struct{}
	log   logging.Logger

	closeOnce sync.Once
}

// NewDispatchQueue starts the dispatch goroutine with the given queue size.
func NewDispatchQueue(queueSize int) *DispatchQueue {
	q := &DispatchQueue{
		tasks: make(chan Task, queueSize),
		done:  make(chan struct{}),
		log:   logging.WithComponent("events"),
	}
	go q.loop()
	return q
}

func (q *DispatchQueue) loop() {
	defer close(q.done)
	for t := range q.tasks {
		start := time.Now()
		t.Run()
		if elapsed := time.Since(start); elapsed > slowTaskThreshold {
			q.log.Warnf("Slow event dispatch (%v): %v", elapsed, t)
		}
	}
}

// Execute enqueues the task. Calling Execute after Close panics.
func (q *DispatchQueue) Execute(t Task) { q.tasks <- t }

// Depth reports the number of queued, not yet started tasks.
func (q *DispatchQueue) Depth() int { return len(q.tasks) }

// Close drains the queue and stops the dispatch goroutine, returning once
// every queued task has run.
func (q *DispatchQueue) Close() {
	q.closeOnce.Do(func() { close(q.tasks) })
	<-q.done
}

// WorkerPool spreads tasks over a fixed set of goroutines. Within one task
// handlers still run in registration order, but no ordering holds across
// publish calls.
type WorkerPool struct {
	tasks chan Task
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewWorkerPool starts workers goroutines consuming a queue of queueSize.
func NewWorkerPool(workers, queueSize int) *WorkerPool {
	p := &WorkerPool{tasks: make(chan Task, queueSize)}
	if workers < 1 {
		workers = 1
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for t := range p.tasks {
				t.Run()
			}
		}()
	}
	return p
}

// Execute enqueues the task. Calling Execute after Close panics.
func (p *WorkerPool) Execute(t Task) { p.tasks <- t }

// Close stops accepting tasks and waits for the workers to finish the queue.
func (p *WorkerPool) Close() {
	p.closeOnce.Do(func() { close(p.tasks) })
	p.wg.Wait()
}
