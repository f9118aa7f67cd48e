// internal/workers/lead/dispatch-lead/handler.go
package dispatchlead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"lead-dispatch-workers/internal/common/errors"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/common/metrics"
	"lead-dispatch-workers/internal/models"
)

const (
	TaskType = "dispatch-lead"
)

// Define interfaces for mocking
type Dispatcher interface {
	Dispatch(tenantID string, raw map[string]string, vendors []models.VendorRecord) (*models.DispatchResult, error)
}

type VendorStore interface {
	Snapshot(ctx context.Context, tenantID string) ([]models.VendorRecord, error)
	ApplyAssignment(ctx context.Context, tenantID, vendorID string, assignedAt time.Time) error
	RecordDispatch(ctx context.Context, result *models.DispatchResult) error
}

type SnapshotCache interface {
	Get(ctx context.Context, tenantID string) ([]models.VendorRecord, bool)
	Set(ctx context.Context, tenantID string, vendors []models.VendorRecord)
	Invalidate(ctx context.Context, tenantID string)
}

type Auditor interface {
	Index(ctx context.Context, result *models.DispatchResult) error
}

type Handler struct {
	config  *Config
	engine  Dispatcher
	store   VendorStore
	cache   SnapshotCache
	auditor Auditor
	logger  logger.Logger
}

// NewHandler wires the decision engine to its collaborators. cache and
// auditor may be nil; the handler then skips snapshot caching and
// audit mirroring.
func NewHandler(config *Config, engine Dispatcher, store VendorStore, cache SnapshotCache, auditor Auditor, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		engine:  engine,
		store:   store,
		cache:   cache,
		auditor: auditor,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, &errors.StandardError{
			Code:      "INPUT_PARSING_FAILED",
			Message:   "Failed to parse job variables",
			Details:   err.Error(),
			Retryable: false,
			Timestamp: time.Now().UTC(),
		})
		return
	}
	if input.TenantID == "" {
		h.failJob(ctx, client, job, errors.NewInvalidLeadError("tenantId is required"))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
		h.failJob(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(started).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	vendors, err := h.loadSnapshot(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	result, err := h.engine.Dispatch(input.TenantID, input.Lead, vendors)
	if err != nil {
		return nil, err
	}

	if err := h.store.RecordDispatch(ctx, result); err != nil {
		return nil, err
	}

	var vendorEmail, vendorPhone string
	if result.Selected() {
		if err := h.store.ApplyAssignment(ctx, input.TenantID, result.SelectedVendorID, result.Timestamp); err != nil {
			return nil, err
		}
		if h.cache != nil {
			h.cache.Invalidate(ctx, input.TenantID)
		}
		for _, v := range vendors {
			if v.ID == result.SelectedVendorID {
				vendorEmail = v.Email
				vendorPhone = v.Phone
				break
			}
		}
	}

	// The audit index is derived data; a failed write must not undo an
	// assignment that already happened.
	if h.auditor != nil {
		if err := h.auditor.Index(ctx, result); err != nil {
			h.logger.Warn("audit index write failed", map[string]interface{}{
				"dispatchId": result.ID,
				"error":      err.Error(),
			})
		}
	}

	return &Output{
		DispatchID:       result.ID,
		VendorSelected:   result.Selected(),
		SelectedVendorID: result.SelectedVendorID,
		VendorEmail:      vendorEmail,
		VendorPhone:      vendorPhone,
		CandidateCount:   result.CandidateCount,
		PrimaryCategory:  result.Classification.PrimaryCategory,
		Priority:         result.Classification.Priority,
		Confidence:       result.Classification.Confidence,
		SelectionReason:  result.SelectionReason,
		DispatchedAt:     result.Timestamp.UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) loadSnapshot(ctx context.Context, tenantID string) ([]models.VendorRecord, error) {
	if h.cache != nil {
		if vendors, ok := h.cache.Get(ctx, tenantID); ok {
			return vendors, nil
		}
	}

	vendors, err := h.store.Snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.Set(ctx, tenantID, vendors)
	}
	return vendors, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, jobErr error) {
	stdErr := convertToStandardError(jobErr)
	bpmnErr := errors.ConvertToBPMNError(stdErr)

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retryable":    bpmnErr.Retryable,
		"retries":      bpmnErr.Retries,
	})

	failCmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(bpmnErr.Retries)).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	var finalCmd interface {
		Send(context.Context) (*pb.FailJobResponse, error)
	} = failCmd
	if len(bpmnErr.ErrorVariables) > 0 {
		varCmd, varErr := failCmd.VariablesFromMap(bpmnErr.ToErrorVariables())
		if varErr != nil {
			h.logger.Error("failed to set error variables, sending without them", map[string]interface{}{
				"jobKey": job.Key,
				"error":  varErr.Error(),
			})
		} else {
			finalCmd = varCmd
		}
	}

	if _, sendErr := finalCmd.Send(ctx); sendErr != nil {
		h.logger.Error("failed to send fail job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  sendErr.Error(),
		})
	}
}

func convertToStandardError(err error) *errors.StandardError {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return stdErr
	}
	return &errors.StandardError{
		Code:      "DISPATCH_LEAD_ERROR",
		Message:   "Failed to dispatch lead",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func extractErrorCode(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}
