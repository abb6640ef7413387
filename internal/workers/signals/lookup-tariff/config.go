// internal/workers/signals/lookup-tariff/config.go
package lookuptariff

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
