// Package money holds the fixed-scale rounding policy for currency amounts and
// fuel quantities. Arithmetic is done at full precision with shopspring/decimal;
// values are rounded (half away from zero) only when stored or rendered.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// EscalaMonto is the scale of every currency amount.
	EscalaMonto int32 = 2
	// EscalaCombustible is the scale of fuel volume and unit price.
	EscalaCombustible int32 = 3
)

// Monto rounds d to the currency scale.
func Monto(d decimal.Decimal) decimal.Decimal { return d.Round(EscalaMonto) }

// Cantidad rounds d to the fuel scale.
func Cantidad(d decimal.Decimal) decimal.Decimal { return d.Round(EscalaCombustible) }

// FormatMonto renders d as a fixed 2-decimal string ("0.00" for zero).
func FormatMonto(d decimal.Decimal) string { return d.StringFixed(EscalaMonto) }

// FormatCantidad renders d as a fixed 3-decimal string.
func FormatCantidad(d decimal.Decimal) string { return d.StringFixed(EscalaCombustible) }

// Sumar adds all values at full precision and rounds the result to the currency scale.
func Sumar(vals ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
	}
	return Monto(total)
}

// Parse reads a decimal string; used by CLI tooling and tests.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto inválido %q: %w", s, err)
	}
	return d, nil
}

// EsPositivo reports whether d > 0.
func EsPositivo(d decimal.Decimal) bool { return d.GreaterThan(decimal.Zero) }
