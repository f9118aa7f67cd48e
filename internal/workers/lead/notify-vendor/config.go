// internal/workers/lead/notify-vendor/config.go
package notifyvendor

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	// SMSPriorityThreshold is the minimum lead priority that triggers an
	// SMS. Email always goes out; SMS is reserved for urgent work.
	SMSPriorityThreshold string
	FromEmail            string
	AWSRegion            string
	Timeout              time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SMSPriorityThreshold: "high",
		Timeout:              30 * time.Second,
	}
}
