// Package catalog loads the product catalog and tariff table the decision
// engine runs against. Every loader fills missing inventory before returning.
package catalog

import (
	"context"

	"procurement-workers/internal/models"
)

// Source provides read access to products and tariffs.
type Source interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id string) (models.Product, error)
	Tariffs(ctx context.Context) (models.TariffTable, error)
}

// TariffRate looks up the rate for a product's origin country and category.
func TariffRate(ctx context.Context, src Source, p models.Product) (float64, error) {
	table, err := src.Tariffs(ctx)
	if err != nil {
		return 0, err
	}
	return table.Rate(p.CountryOfOrigin, p.Category), nil
}

func withDefaults(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = p.WithDefaults()
	}
	return out
}
