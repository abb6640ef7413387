// internal/workers/procurement/send-procurement-alert/models.go
package sendprocurementalert

import "procurement-workers/internal/models"

type Input struct {
	ProductID      string                   `json:"productId"`
	ProductName    string                   `json:"productName,omitempty"`
	SKU            string                   `json:"sku,omitempty"`
	Recommendation string                   `json:"recommendation"`
	Substitutes    []models.SubstituteEntry `json:"substitutes,omitempty"`
}

type Output struct {
	AlertSent bool                      `json:"alertSent"`
	Alerts    []models.ProcurementAlert `json:"alerts"`
}

const (
	ChannelSNS   = "sns"
	ChannelEmail = "email"

	StatusSent    = "sent"
	StatusSkipped = "skipped"
)
