// internal/models/product.go
package models

// Product is a catalog record. Engine code reads products and never mutates them.
type Product struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	SKU             string     `json:"sku"`
	Category        string     `json:"category"`
	Price           float64    `json:"price"`
	BaseCost        float64    `json:"baseCost"`
	CountryOfOrigin string     `json:"originCountry"`
	Features        []string   `json:"features"`
	Inventory       *Inventory `json:"inventory,omitempty"`
}

type Inventory struct {
	Stock         int     `json:"stock"`
	SalesVelocity float64 `json:"salesVelocity"`
}

// InventoryOrZero returns the product inventory, or a zero inventory when it is missing.
func (p Product) InventoryOrZero() Inventory {
	if p.Inventory == nil {
		return Inventory{}
	}
	return *p.Inventory
}

// WithDefaults returns a copy of p with a zero inventory filled in when absent.
// Catalog loaders call it before handing products to the engine.
func (p Product) WithDefaults() Product {
	if p.Inventory == nil {
		p.Inventory = &Inventory{Stock: 0, SalesVelocity: 0}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}

// FindProduct returns the product with the given id.
func FindProduct(catalog []Product, id string) (Product, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// TariffTable maps origin country to category to tariff rate.
type TariffTable map[string]map[string]float64

// Rate returns the tariff for a country/category pair, 0.0 when either key is missing.
func (t TariffTable) Rate(country, category string) float64 {
	byCategory, ok := t[country]
	if !ok {
		return 0.0
	}
	return byCategory[category]
}
