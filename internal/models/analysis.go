// internal/models/analysis.go
package models

import "time"

// ProductAnalysis is the assembled response for one product: recommendation, substitutes and context.
type ProductAnalysis struct {
	AnalysisID     string            `json:"analysisId"`
	Recommendation string            `json:"recommendation"`
	Analysis       AnalysisDetail    `json:"analysis"`
	Substitutes    []SubstituteEntry `json:"substitutes"`
	Context        AnalysisContext   `json:"context"`
	GeneratedAt    time.Time         `json:"generatedAt"`
}

// AnalysisContext records where each signal came from.
type AnalysisContext struct {
	OriginCountry  string `json:"originCountry"`
	Category       string `json:"category"`
	TariffSource   string `json:"tariffSource"` // "catalog" or "override"
	DemandSource   string `json:"demandSource,omitempty"`
	ArticleCount   int    `json:"articleCount"`
	WeatherSource  string `json:"weatherSource,omitempty"`
	SignalOverride bool   `json:"signalOverride"`
}
