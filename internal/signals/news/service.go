// internal/signals/news/service.go
package news

import (
	"context"
	"errors"
	"strings"
	"time"

	"procurement-workers/internal/common/database"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"
	"procurement-workers/internal/models"
)

// Demand signal sources.
const (
	SourceLive     = "live"
	SourceCache    = "cache"
	SourceFallback = "fallback"
	SourceNeutral  = "neutral"
)

const cacheKeyPrefix = "demand-signal:"

type ArticleFetcher interface {
	FetchArticles(ctx context.Context, query string) ([]Article, error)
}

type ArticleSearcher interface {
	Search(ctx context.Context, query string) ([]Article, error)
}

// Service produces a demand signal for a product name. It tries the cache,
// then the live API, then each fallback in the order given. When all fail the
// signal is neutral (0.0), which the rule engine reads as stable demand.
type Service struct {
	live      ArticleFetcher
	fallbacks []ArticleSearcher
	cache    *database.RedisClient
	cacheTTL time.Duration
	scorer   Scorer
	logger   logger.Logger
}

type Option func(*Service)

// WithFallback appends a fallback source. Fallbacks are tried in the order added.
func WithFallback(s ArticleSearcher) Option {
	return func(svc *Service) { svc.fallbacks = append(svc.fallbacks, s) }
}

func WithCache(c *database.RedisClient, ttl time.Duration) Option {
	return func(svc *Service) {
		svc.cache = c
		svc.cacheTTL = ttl
	}
}

func WithScorer(s Scorer) Option {
	return func(svc *Service) { svc.scorer = s }
}

func NewService(live ArticleFetcher, log logger.Logger, opts ...Option) *Service {
	svc := &Service{
		live:     live,
		scorer:   NewLexiconScorer(),
		cacheTTL: 15 * time.Minute,
		logger:   log.WithFields(map[string]interface{}{"signal": "demand"}),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// DemandSignal never fails; upstream errors degrade to the next source.
func (s *Service) DemandSignal(ctx context.Context, productName string) models.DemandSignal {
	key := cacheKeyPrefix + strings.ToLower(strings.TrimSpace(productName))

	if s.cache != nil {
		var cached models.DemandSignal
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			cached.Source = SourceCache
			metrics.SignalFallbacks.WithLabelValues("demand", SourceCache).Inc()
			return cached
		}
		if !errors.Is(err, database.ErrCacheMiss) {
			s.logger.Warn("Demand cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.live != nil {
		articles, err := s.live.FetchArticles(ctx, productName)
		if err == nil {
			signal := s.score(productName, articles, SourceLive)
			s.store(ctx, key, signal)
			return signal
		}
		s.logger.Warn("Live news fetch failed", map[string]interface{}{
			"product": productName,
			"error":   err.Error(),
		})
	}

	for _, fb := range s.fallbacks {
		articles, err := fb.Search(ctx, productName)
		if err == nil {
			metrics.SignalFallbacks.WithLabelValues("demand", SourceFallback).Inc()
			return s.score(productName, articles, SourceFallback)
		}
		s.logger.Warn("Fallback article search failed", map[string]interface{}{
			"product": productName,
			"error":   err.Error(),
		})
	}

	metrics.SignalFallbacks.WithLabelValues("demand", SourceNeutral).Inc()
	return models.DemandSignal{ProductName: productName, Score: 0, Source: SourceNeutral}
}

func (s *Service) score(productName string, articles []Article, source string) models.DemandSignal {
	signal := models.DemandSignal{
		ProductName:  productName,
		Score:        MeanPolarity(s.scorer, articles),
		ArticleCount: len(articles),
		Source:       source,
	}
	s.logger.Debug("Demand signal computed", map[string]interface{}{
		"product":  productName,
		"score":    signal.Score,
		"articles": signal.ArticleCount,
		"source":   source,
	})
	return signal
}

func (s *Service) store(ctx context.Context, key string, signal models.DemandSignal) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, signal, s.cacheTTL); err != nil {
		s.logger.Warn("Demand cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
