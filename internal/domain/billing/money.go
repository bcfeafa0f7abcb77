package billing

import "github.com/shopspring/decimal"

// CurrencyPlaces decimales de la unidad monetaria.
const CurrencyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundCurrency redondea half-up a 2 decimales (los montos de entrada son no negativos).
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// vatOn calcula el IVA de un monto ya validado, redondeado una sola vez.
func vatOn(amount, percent decimal.Decimal) decimal.Decimal {
	return RoundCurrency(amount.Mul(percent).Div(hundred))
}

// HasCurrencyPrecision indica si d no tiene más decimales que la moneda.
// Los montos y porcentajes se almacenan con 2 decimales, sin redondeo silencioso.
func HasCurrencyPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(CurrencyPlaces))
}
