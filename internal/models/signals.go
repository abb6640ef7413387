// internal/models/signals.go
package models

// SignalBundle carries the already-computed external signals for one invocation.
type SignalBundle struct {
	TariffRate    float64 `json:"tariffRate"`
	DemandSignal  float64 `json:"demandSignal"`
	WeatherFactor float64 `json:"weatherFactor"`
}

// DemandSignal is the output of the news collaborator.
type DemandSignal struct {
	ProductName  string  `json:"productName"`
	Score        float64 `json:"score"`
	ArticleCount int     `json:"articleCount"`
	Source       string  `json:"source"` // "live", "fallback", "cache", "neutral"
}

// WeatherSignal is the output of the weather collaborator.
type WeatherSignal struct {
	Factor float64 `json:"weatherFactor"`
	Source string  `json:"source"` // weather condition, "error" or "unconfigured"
}

// Article is a news article as returned by the news API or the fallback index.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}
