// Package rules implements the procurement recommendation cascade.
package rules

import (
	"procurement-workers/internal/models"
)

// RulePrefix starts the single audit line naming the tier that fired.
const RulePrefix = "RULE: "

// Inputs are the normalized scores a rule is evaluated against.
type Inputs struct {
	Cost    float64
	Demand  float64
	Urgency float64
}

// Rule is one tier of the cascade.
type Rule struct {
	Name  string
	When  func(in Inputs) bool
	Label string
	Audit string
}

// Matches reports whether the rule fires for in.
func (r Rule) Matches(in Inputs) bool {
	return r.When(in)
}

// DefaultRules is the cascade in evaluation order. The last rule always matches.
var DefaultRules = []Rule{
	{
		Name:  "cost-veto",
		When:  func(in Inputs) bool { return in.Cost < -0.8 },
		Label: models.RecommendationUseSubstitute,
		Audit: RulePrefix + "Extremely high cost from tariffs triggers USE SUBSTITUTE.",
	},
	{
		Name:  "bulk-sweet-spot",
		When:  func(in Inputs) bool { return in.Urgency >= 1.0 && in.Demand > 0.2 && in.Cost > -0.6 },
		Label: models.RecommendationBulkOrder,
		Audit: RulePrefix + "Critical urgency, positive demand AND acceptable cost trigger BULK ORDER.",
	},
	{
		Name:  "high-demand-high-cost",
		When:  func(in Inputs) bool { return highDemand(in) && in.Cost < -0.6 },
		Label: models.RecommendationUseSubstitute,
		Audit: RulePrefix + "High demand but very high cost triggers USE SUBSTITUTE.",
	},
	{
		Name:  "high-demand-moderate-cost",
		When:  func(in Inputs) bool { return highDemand(in) && in.Cost < -0.2 },
		Label: models.RecommendationStandardOrder,
		Audit: RulePrefix + "High demand with moderate cost triggers STANDARD ORDER.",
	},
	{
		Name:  "high-demand-low-cost",
		When:  highDemand,
		Label: models.RecommendationBulkOrder,
		Audit: RulePrefix + "High demand with low cost triggers BULK ORDER.",
	},
	{
		Name:  "neutral-demand-critical",
		When:  func(in Inputs) bool { return neutralDemand(in) && in.Urgency >= 1.0 },
		Label: models.RecommendationStandardOrder,
		Audit: RulePrefix + "Critical urgency with neutral demand triggers STANDARD ORDER.",
	},
	{
		Name:  "neutral-demand-medium",
		When:  func(in Inputs) bool { return neutralDemand(in) && in.Urgency >= 0.5 },
		Label: models.RecommendationMonitor,
		Audit: RulePrefix + "Medium urgency with neutral demand triggers MONITOR.",
	},
	{
		Name:  "neutral-demand-low",
		When:  neutralDemand,
		Label: models.RecommendationHold,
		Audit: RulePrefix + "Low urgency with neutral demand triggers HOLD.",
	},
	{
		Name:  "low-demand-medium",
		When:  func(in Inputs) bool { return in.Urgency >= 0.5 },
		Label: models.RecommendationMonitor,
		Audit: RulePrefix + "Low demand but medium urgency triggers MONITOR.",
	},
	{
		Name:  "low-demand-low",
		When:  func(Inputs) bool { return true },
		Label: models.RecommendationDeprioritize,
		Audit: RulePrefix + "Low demand with low urgency triggers DEPRIORITIZE.",
	},
}

func highDemand(in Inputs) bool    { return in.Demand > 0.4 }
func neutralDemand(in Inputs) bool { return in.Demand > -0.4 }

// Evaluate returns the first rule in rules matching in. The boolean is false
// only when rules has no catch-all and nothing matched.
func Evaluate(rules []Rule, in Inputs) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(in) {
			return r, true
		}
	}
	return Rule{}, false
}
