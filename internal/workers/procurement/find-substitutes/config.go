// internal/workers/procurement/find-substitutes/config.go
package findsubstitutes

import (
	"time"

	"procurement-workers/internal/decision/similarity"
)

type Config struct {
	Timeout    time.Duration
	Similarity similarity.Config
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		Similarity: similarity.DefaultConfig(),
	}
}
