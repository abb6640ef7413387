// internal/workers/signals/lookup-tariff/models.go
package lookuptariff

// Input names either a product or an explicit country and category.
// Explicit fields win over the product's own.
type Input struct {
	ProductID     string `json:"productId,omitempty"`
	OriginCountry string `json:"originCountry,omitempty"`
	Category      string `json:"category,omitempty"`
}

type Output struct {
	OriginCountry string  `json:"originCountry"`
	Category      string  `json:"category"`
	TariffRate    float64 `json:"tariffRate"`
	Found         bool    `json:"tariffFound"`
}
