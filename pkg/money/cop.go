// Package money formatea montos en pesos colombianos para documentos y respuestas.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var esCO = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP formatea un monto en COP redondeado a pesos enteros: 154700 → "$154.700".
func FormatCOP(d decimal.Decimal) string {
	whole := d.Round(0).IntPart()
	if whole < 0 {
		return "-$" + esCO.Sprintf("%d", -whole)
	}
	return "$" + esCO.Sprintf("%d", whole)
}
