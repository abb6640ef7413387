// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"
	"procurement-workers/internal/common/observability"
)

// JobHandler is implemented by every worker's Handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// WorkerOptions are the per-task settings a job worker is opened with.
type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
	Name          string
	Observability *observability.Observability
}

// Worker is an open Zeebe job subscription for one task type.
type Worker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// OpenWorker subscribes handler to jobs of opts.TaskType. The Zeebe client is
// shared and is not closed by Stop.
func OpenWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, log logger.Logger) *Worker {
	log = log.WithFields(map[string]interface{}{"taskType": opts.TaskType})

	step := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(instrument(opts.TaskType, handler, opts.Observability)).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		step = step.Timeout(opts.Timeout)
	}
	if opts.Name != "" {
		step = step.Name(opts.Name)
	}

	w := &Worker{worker: step.Open(), logger: log, taskType: opts.TaskType}
	log.Info("Worker started", map[string]interface{}{"maxJobsActive": opts.MaxJobsActive})
	return w
}

func instrument(taskType string, handler JobHandler, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer active.Dec()

		start := time.Now()
		handler.Handle(client, job)
		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
		obs.RecordJobProcessed(context.Background(), taskType, "handled")
		obs.RecordJobDuration(context.Background(), taskType, elapsed, "handled")
	}
}

func (w *Worker) TaskType() string {
	return w.taskType
}

// Stop closes the subscription and waits for in-flight jobs.
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
