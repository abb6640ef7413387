package signals

import (
	"fmt"
	"math"

	"procurement-workers/internal/models"
)

const (
	criticalDays = 7.0
	lowDays      = 30.0

	// BadWeatherThreshold is the weather factor at and above which urgency is raised.
	BadWeatherThreshold = 1.0
	weatherUrgencyBoost = 0.2
)

// Urgency tiers.
const (
	TierCritical   = "critical"
	TierLow        = "low"
	TierSufficient = "sufficient"
)

// UrgencyAssessment describes how soon a product needs restocking.
type UrgencyAssessment struct {
	DaysOfStock     float64
	Tier            string
	BaseScore       float64
	Score           float64
	WeatherAdjusted bool
	Notes           []string
}

// DaysOfStock returns stock/velocity, or +Inf when velocity is not positive.
func DaysOfStock(stock int, salesVelocity float64) float64 {
	if salesVelocity > 0 {
		return float64(stock) / salesVelocity
	}
	return math.Inf(1)
}

// AssessUrgency fixes the tier from days of stock first, then adds the weather
// boost on top. A critical product in bad weather scores 1.2 and stays critical.
func AssessUrgency(inv models.Inventory, weatherFactor float64) UrgencyAssessment {
	days := DaysOfStock(inv.Stock, inv.SalesVelocity)
	a := UrgencyAssessment{DaysOfStock: days}

	switch {
	case days < criticalDays:
		a.Tier = TierCritical
		a.BaseScore = 1.0
		a.Notes = append(a.Notes, fmt.Sprintf("Critically low inventory (%s days of stock remaining). High urgency.", formatDays(days)))
	case days < lowDays:
		a.Tier = TierLow
		a.BaseScore = 0.5
		a.Notes = append(a.Notes, fmt.Sprintf("Low inventory (%s days of stock remaining). Medium urgency.", formatDays(days)))
	default:
		a.Tier = TierSufficient
		a.BaseScore = -0.5
		a.Notes = append(a.Notes, fmt.Sprintf("Sufficient inventory (%s days of stock remaining). Low urgency.", formatDays(days)))
	}

	a.Score = a.BaseScore
	if weatherFactor >= BadWeatherThreshold {
		a.Score += weatherUrgencyBoost
		a.WeatherAdjusted = true
		a.Notes = append(a.Notes, "Bad weather detected, slightly increasing urgency score.")
	}
	return a
}

func formatDays(days float64) string {
	if math.IsInf(days, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.1f", days)
}
