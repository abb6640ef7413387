// internal/workers/signals/fetch-demand-signal/models.go
package fetchdemandsignal

type Input struct {
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

type Output struct {
	ProductName  string  `json:"productName"`
	DemandSignal float64 `json:"demandSignal"`
	ArticleCount int     `json:"articleCount"`
	DemandSource string  `json:"demandSource"`
}
