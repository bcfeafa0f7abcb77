package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest entrada para crear un plan de servicio.
// price es opcional; sin precio el plan solo es facturable con precio personalizado.
type CreatePlanRequest struct {
	Name         string           `json:"name" validate:"required,max=150"`
	Type         string           `json:"type" validate:"required,oneof=internet television"`
	Price        *decimal.Decimal `json:"price"`
	AppliesVAT   *bool            `json:"applies_vat"`
	VATPercent   *decimal.Decimal `json:"vat_percent"`
	SpeedDown    int              `json:"speed_down" validate:"min=0"`
	SpeedUp      int              `json:"speed_up" validate:"min=0"`
	ChannelCount int              `json:"channel_count" validate:"min=0"`
}

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Price        *decimal.Decimal `json:"price"`
	AppliesVAT   bool             `json:"applies_vat"`
	VATPercent   decimal.Decimal  `json:"vat_percent"`
	SpeedDown    int              `json:"speed_down,omitempty"`
	SpeedUp      int              `json:"speed_up,omitempty"`
	ChannelCount int              `json:"channel_count,omitempty"`
	Active       bool             `json:"active"`
	CreatedAt    time.Time        `json:"created_at"`
}
