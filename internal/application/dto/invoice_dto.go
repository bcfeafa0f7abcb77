package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssueInvoiceRequest emisión de la factura mensual de una sede.
// due_days por defecto toma la configuración de facturación.
type IssueInvoiceRequest struct {
	Period       string     `json:"period" validate:"required,datetime=2006-01"`
	ConceptCodes []string   `json:"concept_codes" validate:"max=50"`
	EmissionDate *time.Time `json:"emission_date"`
	DueDays      int        `json:"due_days" validate:"min=0,max=90"`
}

// InvoiceResponse factura con líneas.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"client_id"`
	SiteID       string          `json:"site_id"`
	Period       string          `json:"period"`
	EmissionDate string          `json:"emission_date"`
	DueDate      string          `json:"due_date"`
	Lines        []LineResponse  `json:"lines"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	VATTotal     decimal.Decimal `json:"vat_total"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
}
