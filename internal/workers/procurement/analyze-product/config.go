// internal/workers/procurement/analyze-product/config.go
package analyzeproduct

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
