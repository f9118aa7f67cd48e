// internal/store/vendors_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-dispatch-workers/internal/common/errors"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/models"
)

var snapshotColumns = []string{
	"id", "company_name", "status", "taking_new_work",
	"service_categories", "services_offered",
	"coverage_type", "coverage_values",
	"performance_score", "last_assigned_at", "open_assignments",
	"email", "phone",
}

func TestVendorStore_Snapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lastAssigned := time.Date(2026, 4, 30, 6, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, company_name, status`).
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows(snapshotColumns).
			AddRow(
				"V1", "Miami Rapid Tow", "active", true,
				[]byte(`["Boat Towing"]`), []byte(`["emergency towing"]`),
				"county", []byte(`["Miami-Dade, FL"]`),
				0.9, lastAssigned, 3,
				"dispatch@rapidtow.example", "305-555-0101",
			).
			AddRow(
				"V2", "Nationwide Marine Assist", "active", true,
				[]byte(`["Boat Towing"]`), []byte(`[]`),
				"national", []byte(`[]`),
				nil, nil, 0,
				nil, nil,
			))

	s := NewVendorStore(db, logger.NewTestLogger(t))
	vendors, err := s.Snapshot(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Len(t, vendors, 2)

	v1 := vendors[0]
	assert.Equal(t, "V1", v1.ID)
	assert.Equal(t, []string{"Boat Towing"}, v1.ServiceCategories)
	assert.Equal(t, []string{"Miami-Dade, FL"}, v1.CoverageValues)
	assert.Equal(t, 0.9, v1.PerformanceScore)
	require.NotNil(t, v1.LastAssignedAt)
	assert.Equal(t, lastAssigned, *v1.LastAssignedAt)
	assert.Equal(t, 3, v1.OpenAssignments)

	v2 := vendors[1]
	assert.Equal(t, models.DefaultPerformanceScore, v2.PerformanceScore, "NULL score falls back to default")
	assert.Nil(t, v2.LastAssignedAt)
	assert.Empty(t, v2.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorStore_Snapshot_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, company_name, status`).
		WithArgs("tenant-1").
		WillReturnError(assert.AnError)

	s := NewVendorStore(db, logger.NewTestLogger(t))
	_, err = s.Snapshot(context.Background(), "tenant-1")
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeVendorSnapshotFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

// The recency timestamp and the workload counter must move in one
// statement; two statements would let concurrent dispatches interleave.
func TestVendorStore_ApplyAssignment_SingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assignedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE vendors\s+SET last_assigned_at = \$3,\s+open_assignments = open_assignments \+ 1`).
		WithArgs("tenant-1", "V1", assignedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewVendorStore(db, logger.NewTestLogger(t))
	require.NoError(t, s.ApplyAssignment(context.Background(), "tenant-1", "V1", assignedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorStore_ApplyAssignment_UnknownVendor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE vendors`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewVendorStore(db, logger.NewTestLogger(t))
	err = s.ApplyAssignment(context.Background(), "tenant-1", "V-missing", time.Now())
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeAssignmentUpdateFailed, stdErr.Code)
}

func TestVendorStore_ReleaseAssignment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE vendors\s+SET open_assignments = GREATEST\(open_assignments - 1, 0\)`).
		WithArgs("tenant-1", "V1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewVendorStore(db, logger.NewTestLogger(t))
	require.NoError(t, s.ReleaseAssignment(context.Background(), "tenant-1", "V1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorStore_RecordDispatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	result := &models.DispatchResult{
		ID:               "dispatch-001",
		TenantID:         "tenant-1",
		SelectedVendorID: "V1",
		CandidateCount:   2,
		SelectionReason:  "high priority: highest weighted of 2 candidates (weight 1.080)",
		Classification: models.ClassificationResult{
			PrimaryCategory:  "Boat Towing",
			SpecificServices: []string{"emergency towing"},
			Confidence:       0.9,
			Priority:         models.PriorityHigh,
		},
		Timestamp: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(`INSERT INTO dispatches`).
		WithArgs(
			"dispatch-001", "tenant-1", sqlmock.AnyArg(),
			2, result.SelectionReason,
			sqlmock.AnyArg(), result.Timestamp,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewVendorStore(db, logger.NewTestLogger(t))
	require.NoError(t, s.RecordDispatch(context.Background(), result))
	assert.NoError(t, mock.ExpectationsWereMet())
}
