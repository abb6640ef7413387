// internal/workers/procurement/analyze-product/models.go
package analyzeproduct

import (
	"procurement-workers/internal/models"
	"procurement-workers/internal/procurement"
)

// Input is the job payload. Signal fields, when present, replace the looked-up values.
type Input = procurement.Request

type Output struct {
	AnalysisID      string                   `json:"analysisId"`
	Recommendation  string                   `json:"recommendation"`
	Analysis        models.AnalysisDetail    `json:"analysis"`
	Substitutes     []models.SubstituteEntry `json:"substitutes"`
	SubstituteCount int                      `json:"substituteCount"`
	Context         models.AnalysisContext   `json:"analysisContext"`
}
