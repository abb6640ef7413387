// internal/workers/signals/fetch-weather-factor/config.go
package fetchweatherfactor

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
