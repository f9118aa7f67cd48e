// internal/workers/lead/notify-vendor/models.go
package notifyvendor

type Input struct {
	DispatchID      string `json:"dispatchId"`
	TenantID        string `json:"tenantId"`
	VendorID        string `json:"selectedVendorId"`
	VendorEmail     string `json:"vendorEmail,omitempty"`
	VendorPhone     string `json:"vendorPhone,omitempty"`
	PrimaryCategory string `json:"primaryCategory"`
	Priority        string `json:"priority"`
	LeadCity        string `json:"leadCity,omitempty"`
	LeadState       string `json:"leadState,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "partial", "disabled"
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusPartial  = "partial"
	StatusDisabled = "disabled"
)

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
