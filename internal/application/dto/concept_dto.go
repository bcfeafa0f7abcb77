package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertConceptRequest entrada para crear o actualizar un concepto.
// Defaults: applies_vat=false, active=true; vat_percent toma el IVA por defecto si applies_vat=true y no se envía.
type UpsertConceptRequest struct {
	Code        string           `json:"code" validate:"required,max=30"`
	Name        string           `json:"name" validate:"required,max=150"`
	Description string           `json:"description" validate:"max=500"`
	BaseValue   *decimal.Decimal `json:"base_value" validate:"required"`
	AppliesVAT  *bool            `json:"applies_vat"`
	VATPercent  *decimal.Decimal `json:"vat_percent"`
	Type        string           `json:"type" validate:"required,oneof=internet television reconexion interes descuento varios publicidad"`
	Active      *bool            `json:"active"`
}

// BulkCreateConceptsRequest carga masiva (máximo 100 por petición).
type BulkCreateConceptsRequest struct {
	Items []UpsertConceptRequest `json:"items" validate:"required,min=1,max=100"`
}

// ConceptResponse salida de un concepto con sus valores derivados.
type ConceptResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	BaseValue    decimal.Decimal `json:"base_value"`
	AppliesVAT   bool            `json:"applies_vat"`
	VATPercent   decimal.Decimal `json:"vat_percent"`
	Type         string          `json:"type"`
	Active       bool            `json:"active"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
	ValueWithVAT decimal.Decimal `json:"value_with_vat"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BulkItemResult resultado individual de la carga masiva.
type BulkItemResult struct {
	Index   int              `json:"index"`
	Code    string           `json:"code"`
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Data    *ConceptResponse `json:"data,omitempty"`
}

// BulkCreateResult resumen de la carga masiva.
type BulkCreateResult struct {
	Total   int              `json:"total"`
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Results []BulkItemResult `json:"results"`
}
