// internal/workers/lead/sync-crm-contact/config.go
package synccrmcontact

import "time"

type Config struct {
	BaseURL    string
	OAuthToken string
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
