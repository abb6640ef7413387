// internal/workers/procurement/recommend-procurement/models.go
package recommendprocurement

import "procurement-workers/internal/models"

type Input struct {
	Product       models.Product `json:"product"`
	TariffRate    float64        `json:"tariffRate"`
	DemandSignal  float64        `json:"demandSignal"`
	WeatherFactor float64        `json:"weatherFactor"`
}

type Output struct {
	Recommendation string                `json:"recommendation"`
	Analysis       models.AnalysisDetail `json:"analysis"`
}
