// internal/catalog/memory.go
package catalog

import (
	"context"

	apperrors "procurement-workers/internal/common/errors"
	"procurement-workers/internal/models"
)

// MemoryStore serves a fixed snapshot. It backs tests and one-off analyses.
type MemoryStore struct {
	products []models.Product
	tariffs  models.TariffTable
}

func NewMemoryStore(products []models.Product, tariffs models.TariffTable) *MemoryStore {
	if tariffs == nil {
		tariffs = models.TariffTable{}
	}
	return &MemoryStore{products: withDefaults(products), tariffs: tariffs}
}

func (s *MemoryStore) Products(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) Product(_ context.Context, id string) (models.Product, error) {
	p, ok := models.FindProduct(s.products, id)
	if !ok {
		return models.Product{}, apperrors.NewProductNotFoundError(id)
	}
	return p, nil
}

func (s *MemoryStore) Tariffs(_ context.Context) (models.TariffTable, error) {
	return s.tariffs, nil
}
