// internal/workers/signals/fetch-weather-factor/models.go
package fetchweatherfactor

// Input carries no fields; the location is part of the worker's configuration.
type Input struct{}

type Output struct {
	WeatherFactor    float64 `json:"weatherFactor"`
	WeatherCondition string  `json:"weatherCondition"`
}
