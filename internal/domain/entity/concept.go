package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConceptType clasifica un concepto de facturación.
type ConceptType string

const (
	ConceptInternet   ConceptType = "internet"
	ConceptTelevision ConceptType = "television"
	ConceptReconexion ConceptType = "reconexion"
	ConceptInteres    ConceptType = "interes"
	ConceptDescuento  ConceptType = "descuento"
	ConceptVarios     ConceptType = "varios"
	ConceptPublicidad ConceptType = "publicidad"
)

// Valid indica si el tipo pertenece al catálogo.
func (t ConceptType) Valid() bool {
	switch t {
	case ConceptInternet, ConceptTelevision, ConceptReconexion, ConceptInteres,
		ConceptDescuento, ConceptVarios, ConceptPublicidad:
		return true
	}
	return false
}

// Concept es una entrada facturable del catálogo (cargo fijo, descuento, interés, etc.).
// Code es único sin distinguir mayúsculas; se guarda en mayúsculas.
// VATPercent se ignora cuando AppliesVAT es false.
type Concept struct {
	ID          string
	Code        string
	Name        string
	Description string
	BaseValue   decimal.Decimal
	AppliesVAT  bool
	VATPercent  decimal.Decimal // 0..100
	Type        ConceptType
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
