package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner drives one ingestion loop per category. Each loop runs a fresh
// task per cycle with bounded retries, then sleeps the configured
// interval. Shutdown is cooperative: cancellation is observed between
// attempts and during sleeps, never mid-call.
type Runner struct {
	newTask    func(category string) TaskInterface
	categories []string
	interval   time.Duration
	once       bool
	retryPause time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(ctx context.Context, newTask func(category string) TaskInterface,
	categories []string, interval time.Duration, once bool) *Runner {
	runnerCtx, cancel := context.WithCancel(ctx)

	return &Runner{
		newTask:    newTask,
		categories: categories,
		interval:   interval,
		once:       once,
		retryPause: 5 * time.Second,
		ctx:        runnerCtx,
		cancel:     cancel,
	}
}

func (r *Runner) Start() {
	for _, category := range r.categories {
		r.wg.Add(1)
		go r.loop(category)
	}
}

// Wait blocks until every category loop has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) Stop() {
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) loop(category string) {
	defer r.wg.Done()

	slog.Info("Starting fetch loop", "category", category)

	for {
		task := r.newTask(category)
		if ok := r.runWithRetries(task); !ok && r.ctx.Err() == nil {
			slog.Error("Task failed after maximum retries, continuing to next cycle",
				"type", string(task.GetType()), "category", category, "max_retries", task.GetMaxRetries())
		}

		if r.once {
			slog.Info("Single cycle completed", "category", category)
			return
		}

		if interrupted := r.sleep(r.interval); interrupted {
			slog.Info("Fetch loop stopped", "category", category)
			return
		}
	}
}

func (r *Runner) runWithRetries(task TaskInterface) bool {
	for {
		if r.ctx.Err() != nil {
			return false
		}

		task.Start()
		err := task.Execute(r.ctx)
		if err == nil {
			slog.Info("Task completed",
				"type", string(task.GetType()), "id", task.GetID(),
				"category", task.GetCategory(), "duration", task.GetDuration())
			return true
		}

		slog.Error("Task execution failed",
			"type", string(task.GetType()), "id", task.GetID(),
			"category", task.GetCategory(), "retry_count", task.GetRetryCount(), "error", err)

		if !task.CanRetry() {
			return false
		}
		task.IncrementRetryCount()

		if interrupted := r.sleep(r.retryPause); interrupted {
			return false
		}
	}
}

// sleep waits for the duration and reports whether it was interrupted
// by shutdown.
func (r *Runner) sleep(duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-r.ctx.Done():
		return true
	case <-timer.C:
		return false
	}
}
