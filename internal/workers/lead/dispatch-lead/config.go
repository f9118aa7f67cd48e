// internal/workers/lead/dispatch-lead/config.go
package dispatchlead

import "time"

type Config struct {
	Timeout    time.Duration
	MaxRetries int
	AuditIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}
