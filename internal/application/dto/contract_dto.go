package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractTermsResponse términos del contrato de una sede para el generador de contratos.
// Los campos *_display vienen formateados en COP (es-CO) sin decimales.
type ContractTermsResponse struct {
	SiteID              string          `json:"site_id"`
	ContractType        string          `json:"contract_type"`
	InitialMonths       int             `json:"initial_months"`
	RenewalMonths       int             `json:"renewal_months"`
	TermEnd             *time.Time      `json:"term_end,omitempty"`
	MonthsRemaining     int             `json:"months_remaining"`
	MonthlyTotal        decimal.Decimal `json:"monthly_total"`
	TerminationPenalty  decimal.Decimal `json:"termination_penalty"`
	MonthlyTotalDisplay string          `json:"monthly_total_display"`
	PenaltyDisplay      string          `json:"termination_penalty_display"`
	PenaltyFormula      string          `json:"penalty_formula"`
}
