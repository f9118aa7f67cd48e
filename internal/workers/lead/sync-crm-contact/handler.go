// internal/workers/lead/sync-crm-contact/handler.go
package synccrmcontact

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"lead-dispatch-workers/internal/common/crm"
	"lead-dispatch-workers/internal/common/errors"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/common/metrics"
	"lead-dispatch-workers/internal/models"
)

const (
	TaskType = "sync-crm-contact"
)

// Define interfaces for mocking
type CRMService interface {
	UpsertContact(ctx context.Context, contact *crm.Contact) (string, error)
}

type Handler struct {
	config    *Config
	crmClient CRMService
	logger    logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		crmClient: crm.NewClient(config.BaseURL, config.OAuthToken, config.Timeout),
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// NewHandlerWithClient injects the CRM service, used by tests.
func NewHandlerWithClient(config *Config, crmClient CRMService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		crmClient: crmClient,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

// Execute upserts the lead's contact into the CRM. Leads without an
// email are skipped rather than failed: phone-only leads are valid for
// dispatch, but the CRM dedupes on email.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	lead := models.NormalizedRequest(input.Lead)

	email := lead.Get(models.FieldEmail)
	if email == "" {
		h.logger.Info("lead has no email, skipping CRM sync", map[string]interface{}{
			"dispatchId": input.DispatchID,
		})
		return &Output{
			Status:   StatusSkipped,
			SyncedAt: time.Now().UTC().Format(time.RFC3339),
		}, nil
	}

	source := input.FormSource
	if source == "" {
		source = lead.Get(models.FieldFormSource)
	}

	contact := &crm.Contact{
		Email:      email,
		FirstName:  lead.Get(models.FieldFirstName),
		LastName:   lead.Get(models.FieldLastName),
		Phone:      lead.Get(models.FieldPhone),
		LeadSource: source,
	}

	contactID, err := h.crmClient.UpsertContact(ctx, contact)
	if err != nil {
		return nil, errors.NewCRMSyncFailedError(err)
	}

	h.logger.Info("contact synced", map[string]interface{}{
		"dispatchId": input.DispatchID,
		"contactId":  contactID,
	})

	return &Output{
		ContactID: contactID,
		Status:    StatusSynced,
		SyncedAt:  time.Now().UTC().Format(time.RFC3339),
	}, nil
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
		Code:      "SYNC_CRM_CONTACT_ERROR",
		Message:   "Failed to sync contact to CRM",
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
