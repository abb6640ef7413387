package signals

import "fmt"

// TariffScale is the tariff rate that maps to a cost impact of exactly -1.0.
const TariffScale = 0.25

const (
	highTariffRate   = 0.15
	mediumTariffRate = 0.05

	strongDemand = 0.4
)

// Level names used in assessments.
const (
	LevelHigh     = "high"
	LevelMedium   = "medium"
	LevelLow      = "low"
	LevelPositive = "positive"
	LevelNegative = "negative"
	LevelNeutral  = "neutral"
)

// CostAssessment is the normalized cost impact of a tariff.
type CostAssessment struct {
	TariffRate float64
	Score      float64
	Level      string
	Note       string
}

// CostImpact maps a tariff rate onto the cost impact scale. It is unclamped:
// 0.25 gives -1.0, 0.50 gives -2.0.
func CostImpact(tariffRate float64) float64 {
	return -tariffRate / TariffScale
}

// AssessCost scores and classifies a tariff rate.
func AssessCost(tariffRate float64) CostAssessment {
	a := CostAssessment{TariffRate: tariffRate, Score: CostImpact(tariffRate)}
	switch {
	case tariffRate > highTariffRate:
		a.Level = LevelHigh
		a.Note = fmt.Sprintf("High tariff (%s) negatively impacts cost score.", percent(tariffRate))
	case tariffRate > mediumTariffRate:
		a.Level = LevelMedium
		a.Note = fmt.Sprintf("Medium tariff (%s) has moderate cost impact.", percent(tariffRate))
	default:
		a.Level = LevelLow
		a.Note = "Low or zero tariff has minimal cost impact."
	}
	return a
}

// DemandAssessment is the demand score derived from a demand signal.
type DemandAssessment struct {
	Score float64
	Level string
	Note  string
}

// AssessDemand passes the signal through as the score and classifies it.
func AssessDemand(signal float64) DemandAssessment {
	a := DemandAssessment{Score: signal}
	switch {
	case signal > strongDemand:
		a.Level = LevelPositive
		a.Note = fmt.Sprintf("Strong positive news sentiment (score: %.2f) indicates high demand.", signal)
	case signal < -strongDemand:
		a.Level = LevelNegative
		a.Note = fmt.Sprintf("Strong negative news sentiment (score: %.2f) indicates low demand.", signal)
	default:
		a.Level = LevelNeutral
		a.Note = fmt.Sprintf("Neutral news sentiment (score: %.2f) indicates stable demand.", signal)
	}
	return a
}

func percent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}
