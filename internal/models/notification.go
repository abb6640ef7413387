// internal/models/notification.go
package models

// ProcurementAlert is published when a recommendation needs a buyer's attention.
type ProcurementAlert struct {
	ID             string   `json:"id"`
	ProductID      string   `json:"productId"`
	ProductName    string   `json:"productName"`
	SKU            string   `json:"sku,omitempty"`
	Recommendation string   `json:"recommendation"`
	Substitutes    []string `json:"substitutes,omitempty"`
	Channel        string   `json:"channel"` // "sns", "email"
	Status         string   `json:"status"`  // "sent", "failed", "skipped"
	SentAt         string   `json:"sentAt,omitempty"`
}
