// internal/models/vendor.go
package models

import (
	"fmt"
	"time"
)

const (
	VendorStatusPending  = "pending"
	VendorStatusActive   = "active"
	VendorStatusInactive = "inactive"
)

const (
	CoverageZip      = "zip"
	CoverageCounty   = "county"
	CoverageState    = "state"
	CoverageNational = "national"
)

// DefaultPerformanceScore is applied when a vendor has no recorded score.
const DefaultPerformanceScore = 0.8

// VendorRecord is a read-only snapshot of one vendor's capability,
// coverage and performance data at dispatch time. Lifecycle transitions
// (pending/active/inactive) happen outside this engine; the engine only
// reads records and reports the selection it made.
type VendorRecord struct {
	ID                string     `json:"id"`
	CompanyName       string     `json:"companyName"`
	Status            string     `json:"status"`
	TakingNewWork     bool       `json:"takingNewWork"`
	ServiceCategories []string   `json:"serviceCategories"`
	ServicesOffered   []string   `json:"servicesOffered"`
	CoverageType      string     `json:"coverageType"`
	CoverageValues    []string   `json:"coverageValues"`
	PerformanceScore  float64    `json:"performanceScore"`
	LastAssignedAt    *time.Time `json:"lastAssignedAt,omitempty"`
	OpenAssignments   int        `json:"openAssignments"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
}

// Validate checks structural soundness before the record enters scoring.
// A record failing here is a construction error for the whole dispatch
// call, distinct from a "no eligible vendor" outcome.
func (v VendorRecord) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("vendor record missing id")
	}
	switch v.Status {
	case VendorStatusPending, VendorStatusActive, VendorStatusInactive:
	default:
		return fmt.Errorf("vendor %s: undefined status %q", v.ID, v.Status)
	}
	switch v.CoverageType {
	case CoverageZip, CoverageCounty, CoverageState, CoverageNational:
	default:
		return fmt.Errorf("vendor %s: undefined coverage type %q", v.ID, v.CoverageType)
	}
	if v.PerformanceScore < 0 || v.PerformanceScore > 1 {
		return fmt.Errorf("vendor %s: performance score %v outside [0,1]", v.ID, v.PerformanceScore)
	}
	if v.OpenAssignments < 0 {
		return fmt.Errorf("vendor %s: negative open assignments", v.ID)
	}
	return nil
}

// HasCategory reports whether the vendor serves the given primary category.
func (v VendorRecord) HasCategory(category string) bool {
	for _, c := range v.ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}
