package procurement

import (
	"procurement-workers/internal/catalog"
	"procurement-workers/internal/models"
)

func testCatalog() *catalog.MemoryStore {
	products := []models.Product{
		{ID: "P1", Name: "Cordless Drill", SKU: "TL-001", Category: "Tools", Price: 89.99, BaseCost: 40,
			CountryOfOrigin: "China", Features: []string{"cordless", "drill", "battery"},
			Inventory: &models.Inventory{Stock: 10, SalesVelocity: 5}},
		{ID: "P2", Name: "Corded Drill", SKU: "TL-002", Category: "Tools", Price: 59.99, BaseCost: 25,
			CountryOfOrigin: "Mexico", Features: []string{"corded", "drill"},
			Inventory: &models.Inventory{Stock: 200, SalesVelocity: 4}},
		{ID: "P3", Name: "Impact Driver", SKU: "TL-003", Category: "Tools", Price: 99.99, BaseCost: 45,
			CountryOfOrigin: "China", Features: []string{"cordless", "driver", "battery"},
			Inventory: &models.Inventory{Stock: 50, SalesVelocity: 2}},
		{ID: "P4", Name: "Garden Hose", SKU: "GD-001", Category: "Garden", Price: 19.99, BaseCost: 8,
			CountryOfOrigin: "USA", Features: []string{"hose", "outdoor"}},
	}
	tariffs := models.TariffTable{
		"China":  {"Tools": 0.25},
		"Mexico": {"Tools": 0.05},
	}
	return catalog.NewMemoryStore(products, tariffs)
}
