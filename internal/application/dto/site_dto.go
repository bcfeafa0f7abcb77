package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanRefRequest plan de una sede con precio personalizado opcional.
type PlanRefRequest struct {
	PlanID      string           `json:"plan_id" validate:"required"`
	CustomPrice *decimal.Decimal `json:"custom_price"`
}

// CreateSiteRequest body para POST /api/clients/:id/sites.
// contract_type por defecto "none"; activation_date por defecto la fecha actual.
type CreateSiteRequest struct {
	Address        string          `json:"address" validate:"required,max=250"`
	InternetPlan   *PlanRefRequest `json:"internet_plan"`
	TelevisionPlan *PlanRefRequest `json:"television_plan"`
	ContractType   string          `json:"contract_type" validate:"omitempty,oneof=none fixed_term"`
	ContractMonths int             `json:"contract_months" validate:"min=0,max=60"`
	ActivationDate *time.Time      `json:"activation_date"`
}

// PreviewRequest vista previa del cobro mensual sin persistir.
// Se envía client_id (toma el estrato del cliente) o stratum directamente.
type PreviewRequest struct {
	ClientID       string          `json:"client_id"`
	Stratum        int             `json:"stratum" validate:"omitempty,min=1,max=6"`
	InternetPlan   *PlanRefRequest `json:"internet_plan"`
	TelevisionPlan *PlanRefRequest `json:"television_plan"`
	ConceptCodes   []string        `json:"concept_codes" validate:"max=50"`
}

// SiteResponse sede en respuestas.
type SiteResponse struct {
	ID             string          `json:"id"`
	ClientID       string          `json:"client_id"`
	Address        string          `json:"address"`
	InternetPlan   *PlanRefRequest `json:"internet_plan,omitempty"`
	TelevisionPlan *PlanRefRequest `json:"television_plan,omitempty"`
	ContractType   string          `json:"contract_type"`
	ContractMonths int             `json:"contract_months"`
	ActivationDate time.Time       `json:"activation_date"`
	Active         bool            `json:"active"`
}

// LineResponse línea del desglose.
type LineResponse struct {
	Source      string          `json:"source"`
	Ref         string          `json:"ref"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	Total       decimal.Decimal `json:"total"`
}

// BreakdownResponse desglose de cobro de una sede.
type BreakdownResponse struct {
	Stratum  int             `json:"stratum"`
	Lines    []LineResponse  `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	VATTotal decimal.Decimal `json:"vat_total"`
	Total    decimal.Decimal `json:"total"`
}
