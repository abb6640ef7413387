// Package similarity ranks catalog products by feature similarity to a target.
package similarity

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/decision/signals"
	"procurement-workers/internal/models"
)

// Config tunes the substitute search.
type Config struct {
	TopN          int
	MinSimilarity float64
	Precision     int
}

// DefaultConfig returns the standard search: top 3 above 0.10, two decimals.
func DefaultConfig() Config {
	return Config{TopN: 3, MinSimilarity: 0.10, Precision: 2}
}

// Finder looks up substitutes in a catalog snapshot. It holds no fitted state.
type Finder struct {
	config Config
	logger logger.Logger
}

// NewFinder returns a finder. A non-positive TopN or Precision and a negative
// MinSimilarity take their defaults; a MinSimilarity of zero keeps every
// positive match.
func NewFinder(cfg Config, log logger.Logger) *Finder {
	def := DefaultConfig()
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	if cfg.MinSimilarity < 0 {
		cfg.MinSimilarity = def.MinSimilarity
	}
	if cfg.Precision <= 0 {
		cfg.Precision = def.Precision
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Finder{config: cfg, logger: log}
}

// FindSubstitutes returns up to TopN products most similar to targetID, best
// first. It never fails: an absent target, a catalog too small to compare or a
// feature build error all yield an empty list.
func (f *Finder) FindSubstitutes(targetID string, catalog []models.Product) []models.SubstituteEntry {
	result := []models.SubstituteEntry{}

	target := -1
	for i, p := range catalog {
		if p.ID == targetID {
			target = i
			break
		}
	}
	if target < 0 || len(catalog) < 2 {
		return result
	}

	features, err := BuildFeatures(catalog)
	if err != nil {
		f.logger.Warn("Substitute features could not be built", map[string]interface{}{
			"productId":   targetID,
			"catalogSize": len(catalog),
			"error":       err.Error(),
		})
		return result
	}

	for _, c := range f.rank(CosineMatrix(features), target) {
		p := catalog[c.index]
		result = append(result, models.SubstituteEntry{
			ID:         p.ID,
			Name:       p.Name,
			SKU:        p.SKU,
			Similarity: signals.Round(c.score, f.config.Precision),
		})
	}
	return result
}

type candidate struct {
	index int
	score float64
}

func (f *Finder) rank(sim *mat.SymDense, target int) []candidate {
	n := sim.SymmetricDim()
	candidates := make([]candidate, 0, n-1)
	for i := 0; i < n; i++ {
		if i == target {
			continue
		}
		candidates = append(candidates, candidate{index: i, score: sim.At(target, i)})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].score > candidates[b].score
	})
	if len(candidates) > f.config.TopN {
		candidates = candidates[:f.config.TopN]
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if c.score > f.config.MinSimilarity {
			kept = append(kept, c)
		}
	}
	return kept
}
