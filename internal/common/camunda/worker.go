// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandler is the signature job handlers expose. Completion and
// failure are reported through the JobClient, not a return value.
type JobHandler func(client worker.JobClient, job entities.Job)

// WorkerOptions controls polling behavior for a registered worker.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
}

// Worker is a running job worker bound to one task type.
type Worker struct {
	taskType  string
	jobWorker worker.JobWorker
	logger    *zap.Logger
}

// StartWorker registers handler for taskType and begins polling jobs.
func StartWorker(client zbc.Client, taskType string, opts WorkerOptions, handler JobHandler, log *zap.Logger) *Worker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(handler)).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)

	return &Worker{
		taskType:  taskType,
		jobWorker: jobWorker,
		logger:    log,
	}
}

// Close drains in-flight jobs and stops polling.
func (w *Worker) Close() {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.jobWorker.Close()
}
