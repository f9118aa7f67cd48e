// internal/workers/lead/dispatch-lead/models.go
package dispatchlead

type Input struct {
	TenantID string            `json:"tenantId"`
	Lead     map[string]string `json:"lead"`
}

type Output struct {
	DispatchID       string  `json:"dispatchId"`
	VendorSelected   bool    `json:"vendorSelected"`
	SelectedVendorID string  `json:"selectedVendorId,omitempty"`
	VendorEmail      string  `json:"vendorEmail,omitempty"`
	VendorPhone      string  `json:"vendorPhone,omitempty"`
	CandidateCount   int     `json:"candidateCount"`
	PrimaryCategory  string  `json:"primaryCategory"`
	Priority         string  `json:"priority"`
	Confidence       float64 `json:"confidence"`
	SelectionReason  string  `json:"selectionReason"`
	DispatchedAt     string  `json:"dispatchedAt"` // ISO 8601
}
