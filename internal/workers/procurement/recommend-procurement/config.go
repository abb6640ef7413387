// internal/workers/procurement/recommend-procurement/config.go
package recommendprocurement

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
