// internal/workers/lead/notify-vendor/handler.go
package notifyvendor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	commonaws "lead-dispatch-workers/internal/common/aws"
	"lead-dispatch-workers/internal/common/errors"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/common/metrics"
	"lead-dispatch-workers/internal/models"
)

const (
	TaskType = "notify-vendor"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	ctx := context.Background()

	sesClient, err := commonaws.NewSESClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SNS client: %w", err)
	}

	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
	}, nil
}

// NewHandlerWithClients injects the notification services, used by
// tests and by callers that manage AWS configuration themselves.
func NewHandlerWithClients(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
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

// Execute sends on every enabled channel the vendor has an address
// for. One failed channel degrades the result to partial; both
// failing is a retryable error. SMS additionally requires the lead's
// priority to meet the configured threshold.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	attempted := 0
	var sent []string

	if h.config.EmailEnabled && input.VendorEmail != "" {
		attempted++
		if err := h.sendEmail(ctx, input); err != nil {
			h.logger.Warn("email notification failed", map[string]interface{}{
				"vendorId": input.VendorID,
				"error":    err.Error(),
			})
		} else {
			sent = append(sent, ChannelEmail)
		}
	}

	if h.config.SMSEnabled && input.VendorPhone != "" {
		if !h.smsAllowed(input.Priority) {
			h.logger.Debug("priority below sms threshold, sms skipped", map[string]interface{}{
				"vendorId":  input.VendorID,
				"priority":  input.Priority,
				"threshold": h.config.SMSPriorityThreshold,
			})
		} else {
			attempted++
			if err := h.sendSMS(ctx, input); err != nil {
				h.logger.Warn("sms notification failed", map[string]interface{}{
					"vendorId": input.VendorID,
					"error":    err.Error(),
				})
			} else {
				sent = append(sent, ChannelSMS)
			}
		}
	}

	if attempted == 0 {
		return &Output{
			NotificationID: uuid.New().String(),
			Status:         StatusDisabled,
			SentAt:         time.Now().UTC().Format(time.RFC3339),
		}, nil
	}
	if len(sent) == 0 {
		return nil, errors.NewNotificationSendFailedError("all", fmt.Errorf("no channel delivered for vendor %s", input.VendorID))
	}

	status := StatusSent
	if len(sent) < attempted {
		status = StatusPartial
	}

	return &Output{
		NotificationID: uuid.New().String(),
		Status:         status,
		Channels:       sent,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

var priorityRank = map[string]int{
	models.PriorityNormal: 0,
	models.PriorityHigh:   1,
}

// smsAllowed reports whether the lead's priority meets the configured
// SMS threshold. An empty threshold sends SMS on every priority.
func (h *Handler) smsAllowed(priority string) bool {
	threshold := h.config.SMSPriorityThreshold
	if threshold == "" {
		return true
	}
	return priorityRank[priority] >= priorityRank[threshold]
}

func (h *Handler) sendEmail(ctx context.Context, input *Input) error {
	subject := fmt.Sprintf("New %s lead assigned to you", input.PrimaryCategory)
	if input.Priority == models.PriorityHigh {
		subject = "URGENT: " + subject
	}

	var body strings.Builder
	fmt.Fprintf(&body, "You have been assigned a new %s lead.\n\n", input.PrimaryCategory)
	if input.LeadCity != "" {
		fmt.Fprintf(&body, "Location: %s, %s\n", input.LeadCity, input.LeadState)
	}
	fmt.Fprintf(&body, "Priority: %s\n", input.Priority)
	fmt.Fprintf(&body, "Reference: %s\n\n", input.DispatchID)
	body.WriteString("Log in to your dashboard for the full lead details.\n")

	_, err := h.sesClient.SendEmail(ctx, commonaws.BuildEmailInput(
		h.config.FromEmail, input.VendorEmail, subject, body.String()))
	return err
}

func (h *Handler) sendSMS(ctx context.Context, input *Input) error {
	message := fmt.Sprintf("New %s lead assigned (ref %s). Check your dashboard.",
		input.PrimaryCategory, input.DispatchID)
	if input.Priority == models.PriorityHigh {
		message = "URGENT: " + message
	}

	_, err := h.snsClient.Publish(ctx, commonaws.BuildSMSInput(input.VendorPhone, message))
	return err
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
		Code:      "NOTIFY_VENDOR_ERROR",
		Message:   "Failed to notify vendor",
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
