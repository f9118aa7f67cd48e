// internal/workers/lead/sync-crm-contact/models.go
package synccrmcontact

type Input struct {
	DispatchID string            `json:"dispatchId"`
	TenantID   string            `json:"tenantId"`
	Lead       map[string]string `json:"lead"`
	FormSource string            `json:"formSource,omitempty"`
}

type Output struct {
	ContactID string `json:"contactId"`
	Status    string `json:"status"` // "synced", "skipped"
	SyncedAt  string `json:"syncedAt"`
}

// Statuses
const (
	StatusSynced  = "synced"
	StatusSkipped = "skipped"
)
