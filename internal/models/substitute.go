// internal/models/substitute.go
package models

// SubstituteEntry is one ranked substitute for a target product.
type SubstituteEntry struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Similarity float64 `json:"similarity"`
}
