package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura. Las transiciones las hacen el recaudo y el envejecimiento de cartera.
const (
	InvoiceStatusPendiente = "pendiente"
	InvoiceStatusPagada    = "pagada"
	InvoiceStatusVencida   = "vencida"
	InvoiceStatusAnulada   = "anulada"
)

// Invoice cabecera de la factura mensual de una sede.
// Invariante: Total = Subtotal + VATTotal.
type Invoice struct {
	ID           string
	ClientID     string
	SiteID       string
	Period       string // AAAA-MM
	EmissionDate time.Time
	DueDate      time.Time
	Lines        []InvoiceLine
	Subtotal     decimal.Decimal
	VATTotal     decimal.Decimal
	Total        decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Origen de una línea de factura.
const (
	LineSourcePlan    = "plan"
	LineSourceConcept = "concept"
)

// InvoiceLine línea de factura. Ref es el código del concepto o el ID del plan.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	Source      string
	Ref         string
	Description string
	UnitPrice   decimal.Decimal
	VATAmount   decimal.Decimal
	Total       decimal.Decimal
}
