// Package procurement gathers the catalog and signals for a product and runs
// the decision engine on them. Workers and the REST API both call into it.
package procurement

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"procurement-workers/internal/catalog"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"
	"procurement-workers/internal/common/observability"
	"procurement-workers/internal/decision/analysis"
	"procurement-workers/internal/decision/similarity"
	"procurement-workers/internal/models"
)

type DemandSource interface {
	DemandSignal(ctx context.Context, productName string) models.DemandSignal
}

type WeatherSource interface {
	Current(ctx context.Context) models.WeatherSignal
}

// Request selects a product. Any non-nil signal replaces the looked-up value.
type Request struct {
	ProductID     string   `json:"productId"`
	TariffRate    *float64 `json:"tariffRate,omitempty"`
	DemandSignal  *float64 `json:"demandSignal,omitempty"`
	WeatherFactor *float64 `json:"weatherFactor,omitempty"`
}

func (r Request) hasOverride() bool {
	return r.TariffRate != nil || r.DemandSignal != nil || r.WeatherFactor != nil
}

type Service struct {
	catalog   catalog.Source
	demand    DemandSource
	weather   WeatherSource
	assembler *analysis.Assembler
	finder    *similarity.Finder
	obs       *observability.Observability
	logger    logger.Logger
}

type Option func(*Service)

func WithDemandSource(d DemandSource) Option {
	return func(s *Service) { s.demand = d }
}

func WithWeatherSource(w WeatherSource) Option {
	return func(s *Service) { s.weather = w }
}

func WithObservability(o *observability.Observability) Option {
	return func(s *Service) { s.obs = o }
}

func NewService(src catalog.Source, cfg similarity.Config, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		catalog:   src,
		assembler: analysis.NewAssembler(cfg, log),
		finder:    similarity.NewFinder(cfg, log),
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze returns the full analysis for one product. The only error a caller
// should expect for valid input is PRODUCT_NOT_FOUND; catalog failures pass
// through as returned by the source.
func (s *Service) Analyze(ctx context.Context, req Request) (models.ProductAnalysis, error) {
	ctx, span := s.obs.StartSpan(ctx, "procurement.analyze", attribute.String("product.id", req.ProductID))
	defer span.End()

	product, err := s.catalog.Product(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "product lookup failed")
		return models.ProductAnalysis{}, err
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog load failed")
		return models.ProductAnalysis{}, err
	}

	bundle, actx, err := s.gatherSignals(ctx, product, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tariff lookup failed")
		return models.ProductAnalysis{}, err
	}

	result := s.assembler.Assemble(product, bundle, products, actx)
	metrics.ObserveAnalysis(result.Recommendation, len(result.Substitutes))
	span.SetAttributes(
		attribute.String("procurement.recommendation", result.Recommendation),
		attribute.Int("procurement.substitutes", len(result.Substitutes)),
	)
	return result, nil
}

// Substitutes runs only the similarity search for productID. An id missing
// from the catalog yields an empty list, not an error.
func (s *Service) Substitutes(ctx context.Context, productID string) ([]models.SubstituteEntry, error) {
	ctx, span := s.obs.StartSpan(ctx, "procurement.substitutes", attribute.String("product.id", productID))
	defer span.End()

	products, err := s.catalog.Products(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	subs := s.finder.FindSubstitutes(productID, products)
	metrics.SubstitutesReturned.Observe(float64(len(subs)))
	return subs, nil
}

func (s *Service) gatherSignals(ctx context.Context, product models.Product, req Request) (models.SignalBundle, models.AnalysisContext, error) {
	actx := models.AnalysisContext{
		OriginCountry:  product.CountryOfOrigin,
		Category:       product.Category,
		SignalOverride: req.hasOverride(),
	}
	var bundle models.SignalBundle

	if req.TariffRate != nil {
		bundle.TariffRate = *req.TariffRate
		actx.TariffSource = "override"
	} else {
		rate, err := catalog.TariffRate(ctx, s.catalog, product)
		if err != nil {
			return bundle, actx, err
		}
		bundle.TariffRate = rate
		actx.TariffSource = "catalog"
	}

	switch {
	case req.DemandSignal != nil:
		bundle.DemandSignal = *req.DemandSignal
		actx.DemandSource = "override"
	case s.demand != nil:
		sig := s.demand.DemandSignal(ctx, product.Name)
		bundle.DemandSignal = sig.Score
		actx.DemandSource = sig.Source
		actx.ArticleCount = sig.ArticleCount
	default:
		actx.DemandSource = "neutral"
	}

	switch {
	case req.WeatherFactor != nil:
		bundle.WeatherFactor = *req.WeatherFactor
		actx.WeatherSource = "override"
	case s.weather != nil:
		sig := s.weather.Current(ctx)
		bundle.WeatherFactor = sig.Factor
		actx.WeatherSource = sig.Source
	default:
		actx.WeatherSource = "unconfigured"
	}

	s.logger.Debug("Signals gathered", map[string]interface{}{
		"productId":     product.ID,
		"tariffRate":    bundle.TariffRate,
		"demandSignal":  bundle.DemandSignal,
		"weatherFactor": bundle.WeatherFactor,
		"override":      actx.SignalOverride,
	})
	return bundle, actx, nil
}
