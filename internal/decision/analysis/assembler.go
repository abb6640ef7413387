// Package analysis combines the recommendation and substitute search into a
// single product analysis.
package analysis

import (
	"time"

	"github.com/google/uuid"

	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/decision/rules"
	"procurement-workers/internal/decision/similarity"
	"procurement-workers/internal/models"
)

// Recommender produces a recommendation for one product.
type Recommender interface {
	Recommend(product models.Product, tariffRate, demandSignal, weatherFactor float64) models.RecommendationResult
}

// SubstituteFinder ranks substitutes for one product.
type SubstituteFinder interface {
	FindSubstitutes(targetID string, catalog []models.Product) []models.SubstituteEntry
}

type Assembler struct {
	recommender Recommender
	finder      SubstituteFinder
	logger      logger.Logger
	now         func() time.Time
	newID       func() string
}

// NewAssembler wires the default rule engine and finder.
func NewAssembler(cfg similarity.Config, log logger.Logger) *Assembler {
	return NewAssemblerWith(rules.NewEngine(), similarity.NewFinder(cfg, log), log)
}

func NewAssemblerWith(r Recommender, f SubstituteFinder, log logger.Logger) *Assembler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Assembler{
		recommender: r,
		finder:      f,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.New().String() },
	}
}

// Assemble runs the recommendation and the substitute search independently and
// merges them. An empty substitute list never changes the recommendation.
func (a *Assembler) Assemble(product models.Product, signals models.SignalBundle, catalog []models.Product, ctx models.AnalysisContext) models.ProductAnalysis {
	product = product.WithDefaults()

	rec := a.recommender.Recommend(product, signals.TariffRate, signals.DemandSignal, signals.WeatherFactor)
	subs := a.finder.FindSubstitutes(product.ID, catalog)
	if subs == nil {
		subs = []models.SubstituteEntry{}
	}

	if ctx.OriginCountry == "" {
		ctx.OriginCountry = product.CountryOfOrigin
	}
	if ctx.Category == "" {
		ctx.Category = product.Category
	}

	a.logger.Info("Product analysis assembled", map[string]interface{}{
		"productId":      product.ID,
		"recommendation": rec.Recommendation,
		"substitutes":    len(subs),
	})

	return models.ProductAnalysis{
		AnalysisID:     a.newID(),
		Recommendation: rec.Recommendation,
		Analysis:       rec.Analysis,
		Substitutes:    subs,
		Context:        ctx,
		GeneratedAt:    a.now(),
	}
}
