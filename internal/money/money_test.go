package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMontoRedondeaMitadLejosDeCero(t *testing.T) {
	cases := map[string]string{
		"1.005":   "1.01",
		"1.004":   "1.00",
		"-1.005":  "-1.01",
		"2.345":   "2.35",
		"0":       "0.00",
		"1000":    "1000.00",
		"-0.125":  "-0.13",
		"99.9949": "99.99",
	}
	for in, want := range cases {
		d := decimal.RequireFromString(in)
		assert.Equal(t, want, FormatMonto(Monto(d)), "input %s", in)
	}
}

func TestCantidadEscalaTres(t *testing.T) {
	assert.Equal(t, "12.346", FormatCantidad(Cantidad(decimal.RequireFromString("12.3455"))))
	assert.Equal(t, "3.000", FormatCantidad(Cantidad(decimal.NewFromInt(3))))
}

func TestSumarVacioEsCero(t *testing.T) {
	assert.Equal(t, "0.00", FormatMonto(Sumar()))
	assert.Equal(t, "0.30", FormatMonto(Sumar(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))))
}

func TestParse(t *testing.T) {
	d, err := Parse("500.00")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(500)))

	_, err = Parse("abc")
	assert.Error(t, err)
}
