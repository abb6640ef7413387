// internal/workers/procurement/send-procurement-alert/config.go
package sendprocurementalert

import (
	"time"

	"procurement-workers/internal/models"
)

type Config struct {
	Timeout      time.Duration
	AlertLabels  []string
	SNSEnabled   bool
	TopicARN     string
	EmailEnabled bool
	FromEmail    string
	Recipients   []string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     15 * time.Second,
		AlertLabels: []string{models.RecommendationUseSubstitute, models.RecommendationBulkOrder},
	}
}

func (c *Config) shouldAlert(recommendation string) bool {
	for _, l := range c.AlertLabels {
		if l == recommendation {
			return true
		}
	}
	return false
}
