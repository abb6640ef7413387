package procurement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/decision/similarity"
	"procurement-workers/internal/models"
)

type stubDemand struct{ signal models.DemandSignal }

func (s stubDemand) DemandSignal(context.Context, string) models.DemandSignal { return s.signal }

type stubWeather struct{ signal models.WeatherSignal }

func (s stubWeather) Current(context.Context) models.WeatherSignal { return s.signal }

func floatPtr(v float64) *float64 { return &v }

func newTestService(t *testing.T, opts ...Option) *Service {
	return NewService(testCatalog(), similarity.DefaultConfig(), logger.NewTestLogger(t), opts...)
}

func TestAnalyze_LooksUpSignals(t *testing.T) {
	svc := newTestService(t,
		WithDemandSource(stubDemand{models.DemandSignal{Score: 0.1, ArticleCount: 7, Source: "live"}}),
		WithWeatherSource(stubWeather{models.WeatherSignal{Factor: 1, Source: "rain"}}),
	)

	res, err := svc.Analyze(context.Background(), Request{ProductID: "P1"})
	require.NoError(t, err)

	// China/Tools is 25%, which vetoes on cost
	assert.Equal(t, models.RecommendationUseSubstitute, res.Recommendation)
	assert.InDelta(t, 0.25, res.Analysis.Inputs.TariffRate, 1e-9)
	assert.InDelta(t, 1.2, res.Analysis.Scores.UrgencyScore, 1e-9)
	assert.Equal(t, "catalog", res.Context.TariffSource)
	assert.Equal(t, "live", res.Context.DemandSource)
	assert.Equal(t, 7, res.Context.ArticleCount)
	assert.Equal(t, "rain", res.Context.WeatherSource)
	assert.False(t, res.Context.SignalOverride)
	assert.NotEmpty(t, res.AnalysisID)

	for _, s := range res.Substitutes {
		assert.NotEqual(t, "P1", s.ID)
	}
}

func TestAnalyze_Overrides(t *testing.T) {
	svc := newTestService(t, WithDemandSource(stubDemand{models.DemandSignal{Score: -0.9}}))

	res, err := svc.Analyze(context.Background(), Request{
		ProductID:     "P1",
		TariffRate:    floatPtr(0.025),
		DemandSignal:  floatPtr(0.5),
		WeatherFactor: floatPtr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, models.RecommendationBulkOrder, res.Recommendation)
	assert.True(t, res.Context.SignalOverride)
	assert.Equal(t, "override", res.Context.TariffSource)
	assert.Equal(t, "override", res.Context.DemandSource)
	assert.Equal(t, "override", res.Context.WeatherSource)
}

func TestAnalyze_NoSourcesIsNeutral(t *testing.T) {
	res, err := newTestService(t).Analyze(context.Background(), Request{ProductID: "P4"})
	require.NoError(t, err)

	// no tariff entry, no sales
	assert.Equal(t, models.RecommendationHold, res.Recommendation)
	assert.Equal(t, "neutral", res.Context.DemandSource)
	assert.Equal(t, "unconfigured", res.Context.WeatherSource)
}

func TestAnalyze_UnknownProduct(t *testing.T) {
	_, err := newTestService(t).Analyze(context.Background(), Request{ProductID: "nope"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeProductNotFound))
}

func TestSubstitutes(t *testing.T) {
	svc := newTestService(t)

	subs, err := svc.Substitutes(context.Background(), "P1")
	require.NoError(t, err)
	require.NotEmpty(t, subs)
	assert.LessOrEqual(t, len(subs), 3)
	assert.Equal(t, "P3", subs[0].ID)

	unknown, err := svc.Substitutes(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}
