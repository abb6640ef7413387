package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-workers/internal/models"
)

func TestDefaultRules_EachTier(t *testing.T) {
	tests := []struct {
		name  string
		in    Inputs
		rule  string
		label string
	}{
		{"cost veto beats everything", Inputs{Cost: -1.0, Demand: 0.9, Urgency: 1.2}, "cost-veto", models.RecommendationUseSubstitute},
		{"bulk sweet spot", Inputs{Cost: -0.4, Demand: 0.3, Urgency: 1.0}, "bulk-sweet-spot", models.RecommendationBulkOrder},
		{"high demand high cost", Inputs{Cost: -0.7, Demand: 0.5, Urgency: 0.5}, "high-demand-high-cost", models.RecommendationUseSubstitute},
		{"high demand moderate cost", Inputs{Cost: -0.4, Demand: 0.5, Urgency: 0.5}, "high-demand-moderate-cost", models.RecommendationStandardOrder},
		{"high demand low cost", Inputs{Cost: -0.1, Demand: 0.5, Urgency: -0.5}, "high-demand-low-cost", models.RecommendationBulkOrder},
		{"neutral demand critical", Inputs{Cost: 0, Demand: 0, Urgency: 1.0}, "neutral-demand-critical", models.RecommendationStandardOrder},
		{"neutral demand medium", Inputs{Cost: 0, Demand: 0, Urgency: 0.5}, "neutral-demand-medium", models.RecommendationMonitor},
		{"neutral demand low", Inputs{Cost: 0, Demand: 0, Urgency: -0.5}, "neutral-demand-low", models.RecommendationHold},
		{"low demand medium", Inputs{Cost: 0, Demand: -0.5, Urgency: 0.7}, "low-demand-medium", models.RecommendationMonitor},
		{"low demand low", Inputs{Cost: 0, Demand: -0.5, Urgency: -0.5}, "low-demand-low", models.RecommendationDeprioritize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Evaluate(DefaultRules, tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.rule, r.Name)
			assert.Equal(t, tt.label, r.Label)
			assert.True(t, strings.HasPrefix(r.Audit, RulePrefix))
		})
	}
}

func TestDefaultRules_Boundaries(t *testing.T) {
	// cost of exactly -0.8 is not a veto
	r, _ := Evaluate(DefaultRules, Inputs{Cost: -0.8, Demand: 0, Urgency: -0.5})
	assert.Equal(t, "neutral-demand-low", r.Name)

	// bulk sweet spot needs cost strictly above -0.6
	r, _ = Evaluate(DefaultRules, Inputs{Cost: -0.6, Demand: 0.5, Urgency: 1.0})
	assert.Equal(t, "high-demand-moderate-cost", r.Name)

	// demand of exactly 0.4 is neutral
	r, _ = Evaluate(DefaultRules, Inputs{Cost: 0, Demand: 0.4, Urgency: 0.5})
	assert.Equal(t, "neutral-demand-medium", r.Name)

	// demand of exactly -0.4 is low
	r, _ = Evaluate(DefaultRules, Inputs{Cost: 0, Demand: -0.4, Urgency: 0.5})
	assert.Equal(t, "low-demand-medium", r.Name)
}

func TestEvaluate_NoCatchAll(t *testing.T) {
	_, ok := Evaluate(DefaultRules[:1], Inputs{})
	assert.False(t, ok)
}

func TestDefaultRules_LabelsAreKnown(t *testing.T) {
	for _, r := range DefaultRules {
		assert.Contains(t, models.RecommendationLabels, r.Label, r.Name)
	}
}
