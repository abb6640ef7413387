package rules

import (
	"procurement-workers/internal/decision/signals"
	"procurement-workers/internal/models"
)

// Engine produces a recommendation for a single product. It is stateless and
// safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine returns an engine running DefaultRules.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules}
}

// Recommend scores the inputs and runs the cascade. The product's inventory
// must already be defaulted by the caller; a nil inventory is read as zero
// stock with zero velocity. Rules compare the unrounded scores; the emitted
// scores carry two decimals.
func (e *Engine) Recommend(product models.Product, tariffRate, demandSignal, weatherFactor float64) models.RecommendationResult {
	inv := product.InventoryOrZero()

	cost := signals.AssessCost(tariffRate)
	demand := signals.AssessDemand(demandSignal)
	urgency := signals.AssessUrgency(inv, weatherFactor)

	triggered := make([]string, 0, 5)
	triggered = append(triggered, cost.Note, demand.Note)
	triggered = append(triggered, urgency.Notes...)

	rule, ok := Evaluate(e.rules, Inputs{Cost: cost.Score, Demand: demand.Score, Urgency: urgency.Score})
	if !ok {
		rule = DefaultRules[len(DefaultRules)-1]
	}
	triggered = append(triggered, rule.Audit)

	return models.RecommendationResult{
		Recommendation: rule.Label,
		Analysis: models.AnalysisDetail{
			ProductID:   product.ID,
			ProductName: product.Name,
			Inputs: models.AnalysisInputs{
				TariffRate:     tariffRate,
				DemandSignal:   demandSignal,
				WeatherFactor:  weatherFactor,
				InventoryLevel: inv.Stock,
				SalesVelocity:  inv.SalesVelocity,
				DaysOfStock:    models.DaysOfStock(urgency.DaysOfStock),
			},
			Scores: models.Scores{
				CostImpactScore: signals.Round(cost.Score, signals.ScorePrecision),
				DemandScore:     signals.Round(demand.Score, signals.ScorePrecision),
				UrgencyScore:    signals.Round(urgency.Score, signals.ScorePrecision),
			},
			RulesTriggered: triggered,
		},
	}
}
