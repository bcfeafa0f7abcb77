package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

var two = decimal.NewFromInt(2)

// TerminationPenalty cláusula de permanencia: (total mensual × meses restantes) / 2.
// Se usa en el texto del contrato, no en la facturación.
func TerminationPenalty(monthlyTotal decimal.Decimal, monthsRemaining int) decimal.Decimal {
	if monthsRemaining <= 0 {
		return decimal.Zero
	}
	return RoundCurrency(monthlyTotal.Mul(decimal.NewFromInt(int64(monthsRemaining))).Div(two))
}

// RenewalTerm meses de cada renovación automática. Un contrato a término fijo de N meses
// se renueva por 1 mes al vencer, no por N.
func RenewalTerm(c entity.Contract) int {
	if c.Type == entity.ContractFixedTerm {
		return 1
	}
	return 0
}

// CurrentTermEnd fin del periodo vigente en now: el término inicial o la renovación en curso.
// ok es false para contratos sin permanencia.
func CurrentTermEnd(c entity.Contract, activation, now time.Time) (end time.Time, ok bool) {
	if c.Type != entity.ContractFixedTerm || c.Months <= 0 {
		return time.Time{}, false
	}
	months := c.Months
	end = activation.AddDate(0, months, 0)
	for !now.Before(end) {
		months += RenewalTerm(c)
		end = activation.AddDate(0, months, 0)
	}
	return end, true
}

// MonthsRemaining meses (redondeando hacia arriba) hasta el fin del periodo vigente.
func MonthsRemaining(c entity.Contract, activation, now time.Time) int {
	end, ok := CurrentTermEnd(c, activation, now)
	if !ok {
		return 0
	}
	m := 0
	for now.AddDate(0, m, 0).Before(end) {
		m++
	}
	return m
}
