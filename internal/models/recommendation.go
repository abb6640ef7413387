// internal/models/recommendation.go
package models

import (
	"encoding/json"
	"math"
)

// Recommendation labels produced by the rule engine.
const (
	RecommendationUseSubstitute = "Use Substitute"
	RecommendationBulkOrder     = "Bulk Order"
	RecommendationStandardOrder = "Standard Order"
	RecommendationMonitor       = "Monitor"
	RecommendationHold          = "Hold"
	RecommendationDeprioritize  = "Deprioritize"
)

// RecommendationLabels lists every label the engine can emit.
var RecommendationLabels = []string{
	RecommendationUseSubstitute,
	RecommendationBulkOrder,
	RecommendationStandardOrder,
	RecommendationMonitor,
	RecommendationHold,
	RecommendationDeprioritize,
}

type RecommendationResult struct {
	Recommendation string         `json:"recommendation"`
	Analysis       AnalysisDetail `json:"analysis"`
}

type AnalysisDetail struct {
	ProductID      string         `json:"productId"`
	ProductName    string         `json:"productName"`
	Inputs         AnalysisInputs `json:"inputs"`
	Scores         Scores         `json:"scores"`
	RulesTriggered []string       `json:"rulesTriggered"`
}

type AnalysisInputs struct {
	TariffRate     float64     `json:"tariffRate"`
	DemandSignal   float64     `json:"demandSignal"`
	WeatherFactor  float64     `json:"weatherFactor"`
	InventoryLevel int         `json:"inventoryLevel"`
	SalesVelocity  float64     `json:"salesVelocity"`
	DaysOfStock    DaysOfStock `json:"daysOfStock"`
}

type Scores struct {
	CostImpactScore float64 `json:"costImpactScore"`
	DemandScore     float64 `json:"demandScore"`
	UrgencyScore    float64 `json:"urgencyScore"`
}

// DaysOfStock is infinite when sales velocity is zero. JSON has no infinity, so it encodes as null.
type DaysOfStock float64

func (d DaysOfStock) IsInf() bool {
	return math.IsInf(float64(d), 1)
}

func (d DaysOfStock) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(d), 0) || math.IsNaN(float64(d)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(d))
}

func (d *DaysOfStock) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DaysOfStock(math.Inf(1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = DaysOfStock(v)
	return nil
}
