package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

// Derived valores derivados de un concepto.
type Derived struct {
	VATAmount    decimal.Decimal
	ValueWithVAT decimal.Decimal
}

// ComputeDerived calcula IVA y valor con IVA de un concepto. Si AppliesVAT es false
// el porcentaje se ignora. El redondeo se hace una vez por concepto.
func ComputeDerived(c *entity.Concept) Derived {
	if !c.AppliesVAT {
		return Derived{VATAmount: decimal.Zero, ValueWithVAT: c.BaseValue}
	}
	vat := vatOn(c.BaseValue, c.VATPercent)
	return Derived{VATAmount: vat, ValueWithVAT: c.BaseValue.Add(vat)}
}

// NormalizeCode devuelve la forma canónica de un código de concepto.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeConcept deja el código en mayúsculas y recorta nombre y descripción.
func NormalizeConcept(c *entity.Concept) {
	c.Code = NormalizeCode(c.Code)
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
}

// ValidateConcept verifica un concepto ya normalizado.
func ValidateConcept(c *entity.Concept) error {
	if c.Code == "" {
		return fmt.Errorf("%w: el código es requerido", domain.ErrValidation)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: el nombre es requerido", domain.ErrValidation)
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: tipo de concepto %q desconocido", domain.ErrValidation, c.Type)
	}
	if c.BaseValue.IsNegative() {
		return fmt.Errorf("%w: %w: el valor base no puede ser negativo", domain.ErrValidation, domain.ErrInvalidPrice)
	}
	if !HasCurrencyPrecision(c.BaseValue) {
		return fmt.Errorf("%w: %w: el valor base admite máximo 2 decimales", domain.ErrValidation, domain.ErrInvalidPrice)
	}
	if c.AppliesVAT && !validPercent(c.VATPercent) {
		return fmt.Errorf("%w: el porcentaje de IVA debe estar entre 0 y 100", domain.ErrValidation)
	}
	if c.AppliesVAT && !HasCurrencyPrecision(c.VATPercent) {
		return fmt.Errorf("%w: el porcentaje de IVA admite máximo 2 decimales", domain.ErrValidation)
	}
	return nil
}

func validPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}
