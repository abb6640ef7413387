// internal/workers/procurement/find-substitutes/models.go
package findsubstitutes

import "procurement-workers/internal/models"

type Input struct {
	ProductID string `json:"productId"`
}

type Output struct {
	ProductID   string                   `json:"productId"`
	Substitutes []models.SubstituteEntry `json:"substitutes"`
	Count       int                      `json:"substituteCount"`
}
