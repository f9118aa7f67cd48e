// Package errors provides standardized error handling for the dispatch
// pipeline and its BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

type ErrorCode string

const (
	// Dispatch pipeline outcomes. All of these are non-fatal by design:
	// the engine still produces a well-formed dispatch result.
	ErrCodeFieldMappingGap        ErrorCode = "FIELD_MAPPING_GAP"
	ErrCodeClassificationFallback ErrorCode = "CLASSIFICATION_FALLBACK"
	ErrCodeGeographyUnresolved    ErrorCode = "GEOGRAPHY_UNRESOLVED"
	ErrCodeNoEligibleVendor       ErrorCode = "NO_ELIGIBLE_VENDOR"

	// Construction failures reported to the caller before scoring.
	ErrCodeInvalidVendorRecord ErrorCode = "INVALID_VENDOR_RECORD"
	ErrCodeInvalidLead         ErrorCode = "INVALID_LEAD"

	// Collaborator failures.
	ErrCodeVendorSnapshotFailed   ErrorCode = "VENDOR_SNAPSHOT_FAILED"
	ErrCodeAssignmentUpdateFailed ErrorCode = "ASSIGNMENT_UPDATE_FAILED"
	ErrCodeDispatchRecordFailed   ErrorCode = "DISPATCH_RECORD_FAILED"
	ErrCodeAuditIndexFailed       ErrorCode = "AUDIT_INDEX_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeCRMSyncFailed          ErrorCode = "CRM_SYNC_FAILED"
	ErrCodeRulesetLoadFailed      ErrorCode = "RULESET_LOAD_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidVendorRecordError reports a structurally invalid vendor record
// rejected before scoring. Distinct from a "no eligible vendor" outcome.
func NewInvalidVendorRecordError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidVendorRecord,
		Message:   "Vendor record failed structural validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidLeadError reports a lead missing its identifying contact key.
func NewInvalidLeadError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidLead,
		Message:   "Lead is missing an identifying contact key",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewVendorSnapshotFailedError creates a retryable persistence read error.
func NewVendorSnapshotFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVendorSnapshotFailed,
		Message:   "Failed to read vendor snapshot",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssignmentUpdateFailedError creates a retryable persistence write error.
func NewAssignmentUpdateFailedError(vendorID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssignmentUpdateFailed,
		Message:   "Failed to apply assignment side effects",
		Details:   fmt.Sprintf("vendorId: %s, error: %s", vendorID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDispatchRecordFailedError creates a retryable persistence write error.
func NewDispatchRecordFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDispatchRecordFailed,
		Message:   "Failed to record dispatch result",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditIndexFailedError creates a retryable audit indexing error.
func NewAuditIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditIndexFailed,
		Message:   "Failed to index dispatch result",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to notify vendor",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMSyncFailedError creates a retryable CRM error.
func NewCRMSyncFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMSyncFailed,
		Message:   "Failed to sync contact to CRM",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRulesetLoadFailedError creates a non-retryable configuration error.
func NewRulesetLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRulesetLoadFailed,
		Message:   "Failed to load classification ruleset",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Retry & BPMN Mapping
// ==========================

// BPMNErrorMapping maps internal codes to workflow-visible codes. Identity
// mapping today; kept so BPMN diagrams stay stable if codes get renamed.
var BPMNErrorMapping = map[ErrorCode]string{}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeVendorSnapshotFailed,
		ErrCodeAssignmentUpdateFailed,
		ErrCodeDispatchRecordFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeCRMSyncFailed:
		return 3 // Retryable technical errors

	case ErrCodeAuditIndexFailed:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for the
// workflow engine.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VENDOR_SNAPSHOT") || strings.Contains(codeStr, "ASSIGNMENT") || strings.Contains(codeStr, "DISPATCH_RECORD"):
		return "PERSISTENCE"
	case strings.Contains(codeStr, "AUDIT"):
		return "AUDIT"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "CRM"):
		return "CRM"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "RULESET"):
		return "VALIDATION"
	default:
		return "DISPATCH"
	}
}
