package calculo

import (
	"errors"

	"flota/internal/money"

	"github.com/shopspring/decimal"
)

var (
	ErrGalonesNoPositivos = errors.New("galones debe ser mayor a cero")
	ErrPrecioNoPositivo   = errors.New("precio por galón debe ser mayor a cero")
)

// Carga is a fuel fill-up as stored: galones and precio at scale 3, total at scale 2.
type Carga struct {
	Galones        decimal.Decimal
	PrecioPorGalon decimal.Decimal
	Total          decimal.Decimal
}

// TotalCombustible rounds both inputs to scale 3 and derives the total from the
// rounded pair, so recomputing from stored values always reproduces the stored total.
func TotalCombustible(galones, precioPorGalon decimal.Decimal) (Carga, error) {
	if !money.EsPositivo(galones) {
		return Carga{}, ErrGalonesNoPositivos
	}
	if !money.EsPositivo(precioPorGalon) {
		return Carga{}, ErrPrecioNoPositivo
	}
	g := money.Cantidad(galones)
	p := money.Cantidad(precioPorGalon)
	if !money.EsPositivo(g) {
		return Carga{}, ErrGalonesNoPositivos
	}
	if !money.EsPositivo(p) {
		return Carga{}, ErrPrecioNoPositivo
	}
	return Carga{
		Galones:        g,
		PrecioPorGalon: p,
		Total:          money.Monto(g.Mul(p)),
	}, nil
}
