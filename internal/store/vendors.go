// internal/store/vendors.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"lead-dispatch-workers/internal/common/errors"
	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/models"
)

// VendorStore is the persistence collaborator behind the dispatch
// engine: it supplies the tenant-scoped vendor snapshot, durably
// records dispatch decisions, and applies a selection's workload side
// effects.
type VendorStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewVendorStore(db *sql.DB, log logger.Logger) *VendorStore {
	return &VendorStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "vendor-store"}),
	}
}

const snapshotQuery = `
	SELECT id, company_name, status, taking_new_work,
	       service_categories, services_offered,
	       coverage_type, coverage_values,
	       performance_score, last_assigned_at, open_assignments,
	       email, phone
	FROM vendors
	WHERE tenant_id = $1
	ORDER BY id`

// Snapshot reads the tenant's full vendor set. Array-valued columns
// are stored as JSON; a NULL performance score falls back to the
// default so scoring never sees a missing base weight.
func (s *VendorStore) Snapshot(ctx context.Context, tenantID string) ([]models.VendorRecord, error) {
	rows, err := s.db.QueryContext(ctx, snapshotQuery, tenantID)
	if err != nil {
		return nil, errors.NewVendorSnapshotFailedError(err)
	}
	defer rows.Close()

	var vendors []models.VendorRecord
	for rows.Next() {
		var (
			v                models.VendorRecord
			categoriesJSON   []byte
			servicesJSON     []byte
			coverageJSON     []byte
			performanceScore sql.NullFloat64
			lastAssignedAt   sql.NullTime
			email, phone     sql.NullString
		)

		err := rows.Scan(
			&v.ID, &v.CompanyName, &v.Status, &v.TakingNewWork,
			&categoriesJSON, &servicesJSON,
			&v.CoverageType, &coverageJSON,
			&performanceScore, &lastAssignedAt, &v.OpenAssignments,
			&email, &phone,
		)
		if err != nil {
			return nil, errors.NewVendorSnapshotFailedError(err)
		}

		if err := json.Unmarshal(categoriesJSON, &v.ServiceCategories); err != nil {
			return nil, errors.NewVendorSnapshotFailedError(fmt.Errorf("vendor %s service_categories: %w", v.ID, err))
		}
		if err := json.Unmarshal(servicesJSON, &v.ServicesOffered); err != nil {
			return nil, errors.NewVendorSnapshotFailedError(fmt.Errorf("vendor %s services_offered: %w", v.ID, err))
		}
		if err := json.Unmarshal(coverageJSON, &v.CoverageValues); err != nil {
			return nil, errors.NewVendorSnapshotFailedError(fmt.Errorf("vendor %s coverage_values: %w", v.ID, err))
		}

		if performanceScore.Valid {
			v.PerformanceScore = performanceScore.Float64
		} else {
			v.PerformanceScore = models.DefaultPerformanceScore
		}
		if lastAssignedAt.Valid {
			ts := lastAssignedAt.Time
			v.LastAssignedAt = &ts
		}
		v.Email = email.String
		v.Phone = phone.String

		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewVendorSnapshotFailedError(err)
	}

	return vendors, nil
}

// ApplyAssignment records a successful selection's side effects as a
// single UPDATE, so the recency timestamp and the workload counter
// move together even under concurrent dispatches.
func (s *VendorStore) ApplyAssignment(ctx context.Context, tenantID, vendorID string, assignedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE vendors
		SET last_assigned_at = $3,
		    open_assignments = open_assignments + 1
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, vendorID, assignedAt,
	)
	if err != nil {
		return errors.NewAssignmentUpdateFailedError(vendorID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewAssignmentUpdateFailedError(vendorID, err)
	}
	if affected == 0 {
		return errors.NewAssignmentUpdateFailedError(vendorID, fmt.Errorf("vendor not found for tenant %s", tenantID))
	}

	return nil
}

// ReleaseAssignment decrements the workload counter when a vendor
// closes out a job. The floor keeps retried completions from driving
// the counter negative.
func (s *VendorStore) ReleaseAssignment(ctx context.Context, tenantID, vendorID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE vendors
		SET open_assignments = GREATEST(open_assignments - 1, 0)
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, vendorID,
	)
	if err != nil {
		return errors.NewAssignmentUpdateFailedError(vendorID, err)
	}
	return nil
}

// RecordDispatch durably stores the decision. The classification is
// kept as a JSON document alongside the relational columns so audits
// can reconstruct the full reasoning.
func (s *VendorStore) RecordDispatch(ctx context.Context, result *models.DispatchResult) error {
	classificationJSON, err := json.Marshal(result.Classification)
	if err != nil {
		return errors.NewDispatchRecordFailedError(err)
	}

	var selectedVendor sql.NullString
	if result.SelectedVendorID != "" {
		selectedVendor = sql.NullString{String: result.SelectedVendorID, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dispatches (id, tenant_id, selected_vendor_id, candidate_count, selection_reason, classification, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.ID, result.TenantID, selectedVendor,
		result.CandidateCount, result.SelectionReason,
		classificationJSON, result.Timestamp,
	)
	if err != nil {
		return errors.NewDispatchRecordFailedError(err)
	}

	s.logger.Debug("dispatch recorded", map[string]interface{}{
		"dispatchId": result.ID,
		"tenantId":   result.TenantID,
	})
	return nil
}
