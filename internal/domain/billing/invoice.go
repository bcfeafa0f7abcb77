package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

// Line entrada del calculador: un plan o un concepto con su regla de IVA.
// Price nil significa precio ausente y produce ErrInvalidPrice.
// Credit resta la línea del total (descuentos); el precio sigue siendo no negativo.
type Line struct {
	Source      string
	Ref         string
	Description string
	Kind        LineKind
	Price       *decimal.Decimal
	AppliesVAT  bool
	VATPercent  decimal.Decimal
	Credit      bool
}

// LineResult línea calculada.
type LineResult struct {
	Source      string
	Ref         string
	Description string
	UnitPrice   decimal.Decimal
	VATAmount   decimal.Decimal
	Total       decimal.Decimal
}

// Breakdown desglose de factura. Total = Subtotal + VATTotal.
type Breakdown struct {
	Lines    []LineResult
	Subtotal decimal.Decimal
	VATTotal decimal.Decimal
	Total    decimal.Decimal
}

// ComputeLine calcula precio, IVA y total de una línea para el estrato dado.
func ComputeLine(l Line, stratum int) (LineResult, error) {
	if l.Price == nil {
		return LineResult{}, fmt.Errorf("%w: %s sin precio", domain.ErrInvalidPrice, l.Ref)
	}
	price := *l.Price
	if price.IsNegative() {
		return LineResult{}, fmt.Errorf("%w: %s tiene precio negativo", domain.ErrInvalidPrice, l.Ref)
	}
	vat := decimal.Zero
	if VATApplies(l.Kind, l.AppliesVAT, stratum) {
		if !validPercent(l.VATPercent) {
			return LineResult{}, fmt.Errorf("%w: porcentaje de IVA fuera de rango en %s", domain.ErrValidation, l.Ref)
		}
		vat = vatOn(price, l.VATPercent)
	}
	if l.Credit {
		price = price.Neg()
		vat = vat.Neg()
	}
	return LineResult{
		Source:      l.Source,
		Ref:         l.Ref,
		Description: l.Description,
		UnitPrice:   price,
		VATAmount:   vat,
		Total:       price.Add(vat),
	}, nil
}

// LineTotal = precio + IVA redondeado de la línea.
func LineTotal(l Line, stratum int) (decimal.Decimal, error) {
	r, err := ComputeLine(l, stratum)
	if err != nil {
		return decimal.Zero, err
	}
	return r.Total, nil
}

// InvoiceTotal suma los totales de línea ya redondeados. No hay redondeo posterior a la suma.
func InvoiceTotal(lines []Line, stratum int) (decimal.Decimal, error) {
	b, err := ComputeInvoice(lines, stratum)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Total, nil
}

// ComputeInvoice produce el desglose completo. Falla con la primera línea inválida.
func ComputeInvoice(lines []Line, stratum int) (*Breakdown, error) {
	b := &Breakdown{
		Lines:    make([]LineResult, 0, len(lines)),
		Subtotal: decimal.Zero,
		VATTotal: decimal.Zero,
	}
	for _, l := range lines {
		r, err := ComputeLine(l, stratum)
		if err != nil {
			return nil, err
		}
		b.Lines = append(b.Lines, r)
		b.Subtotal = b.Subtotal.Add(r.UnitPrice)
		b.VATTotal = b.VATTotal.Add(r.VATAmount)
	}
	b.Total = b.Subtotal.Add(b.VATTotal)
	return b, nil
}

// ConceptLine convierte un concepto del catálogo en línea facturable.
func ConceptLine(c *entity.Concept) Line {
	price := c.BaseValue
	return Line{
		Source:      entity.LineSourceConcept,
		Ref:         c.Code,
		Description: c.Name,
		Kind:        LineKind(c.Type),
		Price:       &price,
		AppliesVAT:  c.AppliesVAT,
		VATPercent:  c.VATPercent,
		Credit:      c.Type == entity.ConceptDescuento,
	}
}

// PlanLine convierte un plan referenciado por una sede en línea facturable.
// El precio efectivo es el personalizado si existe; si no, el del plan.
func PlanLine(plan *entity.ServicePlan, ref *entity.PlanRef) Line {
	price := plan.Price
	if ref != nil && ref.CustomPrice != nil {
		price = ref.CustomPrice
	}
	return Line{
		Source:      entity.LineSourcePlan,
		Ref:         plan.ID,
		Description: plan.Name,
		Kind:        LineKind(plan.Type),
		Price:       price,
		AppliesVAT:  plan.AppliesVAT,
		VATPercent:  plan.VATPercent,
	}
}

// ToInvoiceLines copia el desglose a entidades de línea.
func (b *Breakdown) ToInvoiceLines() []entity.InvoiceLine {
	out := make([]entity.InvoiceLine, 0, len(b.Lines))
	for _, r := range b.Lines {
		out = append(out, entity.InvoiceLine{
			Source:      r.Source,
			Ref:         r.Ref,
			Description: r.Description,
			UnitPrice:   r.UnitPrice,
			VATAmount:   r.VATAmount,
			Total:       r.Total,
		})
	}
	return out
}
