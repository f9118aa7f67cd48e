// internal/common/errors/errors_test.go
package errors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError_RetryableError(t *testing.T) {
	stdErr := NewVendorSnapshotFailedError(assert.AnError)

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, string(ErrCodeVendorSnapshotFailed), bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Equal(t, string(ErrCodeVendorSnapshotFailed), bpmnErr.ErrorVariables["originalErrorCode"])
}

func TestConvertToBPMNError_NonRetryableGetsZeroRetries(t *testing.T) {
	stdErr := NewInvalidLeadError("no contact key")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, string(ErrCodeInvalidLead), bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Equal(t, 0, bpmnErr.Retries)
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewAuditIndexFailedError(assert.AnError))

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, string(ErrCodeAuditIndexFailed), vars["errorCode"])
	assert.Equal(t, "Failed to index dispatch result", vars["errorMessage"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, string(ErrCodeAuditIndexFailed), vars["originalErrorCode"])

	ts, ok := vars["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		retries int
	}{
		{ErrCodeVendorSnapshotFailed, 3},
		{ErrCodeAssignmentUpdateFailed, 3},
		{ErrCodeNotificationSendFailed, 3},
		{ErrCodeCRMSyncFailed, 3},
		{ErrCodeAuditIndexFailed, 2},
		{ErrCodeInvalidLead, 0},
		{ErrCodeInvalidVendorRecord, 0},
		{ErrCodeNoEligibleVendor, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retries, GetRetryCount(tt.code))
			assert.Equal(t, tt.retries > 0, IsRetryableErrorCode(tt.code))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "PERSISTENCE", GetErrorCategory(ErrCodeVendorSnapshotFailed))
	assert.Equal(t, "AUDIT", GetErrorCategory(ErrCodeAuditIndexFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "CRM", GetErrorCategory(ErrCodeCRMSyncFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidLead))
	assert.Equal(t, "DISPATCH", GetErrorCategory(ErrCodeNoEligibleVendor))
}
