package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/11Rojas/mascoticas-backend/metrics"
)

// Dispatcher is a bounded worker pool for the push/broadcast side effects.
// The request path hands a task over and returns immediately; failures are
// logged and counted, never propagated back.
type Dispatcher struct {
	tasks  chan namedTask
	wg     sync.WaitGroup
	budget time.Duration
}

type namedTask struct {
	name string
	run  func(ctx context.Context) error
}

// NewDispatcher starts workers goroutines draining a queue of queueSize
// tasks. Each task gets its own deadline so one stuck delivery cannot stall
// the pool.
func NewDispatcher(workers, queueSize int, taskBudget time.Duration) *Dispatcher {
	d := &Dispatcher{
		tasks:  make(chan namedTask, queueSize),
		budget: taskBudget,
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

// Submit enqueues a task. When the queue is full the task is dropped and
// logged instead of blocking the request path.
func (d *Dispatcher) Submit(name string, task func(ctx context.Context) error) {
	select {
	case d.tasks <- namedTask{name: name, run: task}:
	default:
		log.Printf("⚠️ dispatcher queue full, dropping task %s", name)
		metrics.TasksFailed.Inc()
	}
}

// Close stops the workers after the queue drains.
func (d *Dispatcher) Close() {
	close(d.tasks)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.tasks {
		d.runOne(task)
	}
}

func (d *Dispatcher) runOne(task namedTask) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ task %s panicked: %v", task.name, r)
			metrics.TasksFailed.Inc()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.budget)
	defer cancel()

	if err := task.run(ctx); err != nil {
		log.Printf("⚠️ task %s failed: %v", task.name, err)
		metrics.TasksFailed.Inc()
	}
}
