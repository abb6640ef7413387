package signals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"procurement-workers/internal/models"
)

func TestDaysOfStock(t *testing.T) {
	assert.Equal(t, 10.0, DaysOfStock(100, 10))
	assert.True(t, math.IsInf(DaysOfStock(100, 0), 1))
	assert.True(t, math.IsInf(DaysOfStock(0, -1), 1))
}

func TestAssessUrgency(t *testing.T) {
	tests := []struct {
		name      string
		inv       models.Inventory
		weather   float64
		tier      string
		score     float64
		adjusted  bool
		noteCount int
	}{
		{"critical", models.Inventory{Stock: 10, SalesVelocity: 5}, 0, TierCritical, 1.0, false, 1},
		{"critical in bad weather", models.Inventory{Stock: 10, SalesVelocity: 5}, 1, TierCritical, 1.2, true, 2},
		{"low", models.Inventory{Stock: 100, SalesVelocity: 10}, 0, TierLow, 0.5, false, 1},
		{"low in bad weather", models.Inventory{Stock: 100, SalesVelocity: 10}, 1, TierLow, 0.7, true, 2},
		{"exactly seven days", models.Inventory{Stock: 70, SalesVelocity: 10}, 0, TierLow, 0.5, false, 1},
		{"exactly thirty days", models.Inventory{Stock: 300, SalesVelocity: 10}, 0, TierSufficient, -0.5, false, 1},
		{"no sales", models.Inventory{Stock: 5, SalesVelocity: 0}, 0, TierSufficient, -0.5, false, 1},
		{"sufficient in bad weather", models.Inventory{Stock: 500, SalesVelocity: 1}, 1, TierSufficient, -0.3, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AssessUrgency(tt.inv, tt.weather)
			assert.Equal(t, tt.tier, a.Tier)
			assert.InDelta(t, tt.score, a.Score, 1e-9)
			assert.Equal(t, tt.adjusted, a.WeatherAdjusted)
			assert.Len(t, a.Notes, tt.noteCount)
		})
	}
}

func TestAssessUrgency_InfiniteDaysNote(t *testing.T) {
	a := AssessUrgency(models.Inventory{Stock: 5}, 0)
	assert.Equal(t, "Sufficient inventory (inf days of stock remaining). Low urgency.", a.Notes[0])
}
