package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de contrato de una sede.
const (
	ContractNone      = "none"
	ContractFixedTerm = "fixed_term"
)

// PlanRef referencia a un plan con precio personalizado opcional.
type PlanRef struct {
	PlanID      string
	CustomPrice *decimal.Decimal
}

// Contract condiciones de permanencia de la sede.
type Contract struct {
	Type   string // none | fixed_term
	Months int    // duración inicial, solo fixed_term
}

// Site (sede) agrupa los servicios de una ubicación: un contrato y una factura mensual.
// Al menos uno de InternetPlan/TelevisionPlan debe estar definido.
type Site struct {
	ID             string
	ClientID       string
	Address        string
	InternetPlan   *PlanRef
	TelevisionPlan *PlanRef
	Contract       Contract
	ActivationDate time.Time
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
