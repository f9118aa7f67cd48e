// internal/models/dispatch.go
package models

import "time"

// DispatchResult is the immutable, auditable decision produced for one
// inbound lead. Exactly one result exists per request; a result with an
// empty SelectedVendorID is a valid business outcome, not an error.
type DispatchResult struct {
	ID               string               `json:"id"`
	TenantID         string               `json:"tenantId"`
	SelectedVendorID string               `json:"selectedVendorId,omitempty"`
	CandidateCount   int                  `json:"candidateCount"`
	SelectionReason  string               `json:"selectionReason"`
	Classification   ClassificationResult `json:"classification"`
	Timestamp        time.Time            `json:"timestamp"`
}

// Selected reports whether a vendor was chosen.
func (d DispatchResult) Selected() bool {
	return d.SelectedVendorID != ""
}
