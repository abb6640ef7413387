// internal/workers/signals/fetch-demand-signal/config.go
package fetchdemandsignal

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
