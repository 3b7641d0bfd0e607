package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/foliolabs/folio/domain/task"
)

// Handler executes one queued task operation.
type Handler interface {
	Execute(ctx context.Context, payload map[string]any) error
}

// Registry maps task operations to their handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[task.Operation]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[task.Operation]Handler)}
}

// Register binds a handler to an operation, replacing any previous binding.
func (r *Registry) Register(op task.Operation, h Handler) {
	r.mu.Lock()
	r.handlers[op] = h
	r.mu.Unlock()
}

// Handler looks up the handler bound to an operation.
func (r *Registry) Handler(op task.Operation) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[op]
	return h, ok
}

// Operations lists the registered operations.
func (r *Registry) Operations() []task.Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ops := make([]task.Operation, 0, len(r.handlers))
	for op := range r.handlers {
		ops = append(ops, op)
	}
	return ops
}

// Worker drains the task queue in the background. Each poll drains the queue
// until it is empty, so a burst of project writes is indexed in one pass
// rather than one task per tick.
type Worker struct {
	tasks      task.Store
	registry   *Registry
	logger     *slog.Logger
	pollPeriod time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorker creates a worker polling once per second.
func NewWorker(tasks task.Store, registry *Registry, logger *slog.Logger) *Worker {
	return &Worker{
		tasks:      tasks,
		registry:   registry,
		logger:     logger,
		pollPeriod: time.Second,
	}
}

// WithPollPeriod overrides the poll period.
func (w *Worker) WithPollPeriod(d time.Duration) *Worker {
	w.pollPeriod = d
	return w
}

// Start launches the poll loop in a goroutine.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.poll(ctx)
	}()
}

// Stop cancels the poll loop and waits for any in-flight task to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	w.wg.Wait()
	w.logger.Info("task worker stopped")
}

func (w *Worker) poll(ctx context.Context) {
	w.logger.Info("task worker started", slog.Duration("poll_period", w.pollPeriod))

	ticker := time.NewTicker(w.pollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain processes tasks until the queue is empty or an error stops the pass.
func (w *Worker) drain(ctx context.Context) {
	for {
		processed, err := w.ProcessOne(ctx)
		if err != nil {
			if ctx.Err() == nil {
				w.logger.Error("task processing failed", slog.String("error", err.Error()))
			}
			return
		}
		if !processed {
			return
		}
	}
}

// ProcessOne dequeues and executes a single task. The task is deleted
// whatever the outcome: failed tasks are not retried, and a task whose
// operation has no registered handler must not wedge the queue. Returns
// whether a task was dequeued.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	t, found, err := w.tasks.Dequeue(ctx)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	logger := w.logger.With(
		slog.Int64("task_id", t.ID()),
		slog.String("operation", t.Operation().String()),
	)

	handler, ok := w.registry.Handler(t.Operation())
	if !ok {
		logger.Error("no handler registered, dropping task")
		return true, w.tasks.Delete(ctx, t)
	}

	start := time.Now()
	if err := handler.Execute(ctx, t.Payload()); err != nil {
		logger.Error("task failed, dropping", slog.String("error", err.Error()))
		return true, w.tasks.Delete(ctx, t)
	}

	logger.Info("task completed", slog.Duration("duration", time.Since(start)))
	return true, w.tasks.Delete(ctx, t)
}
