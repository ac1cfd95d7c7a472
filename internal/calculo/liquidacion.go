// Package calculo holds the pure settlement and scheduling rules: freight
// settlement, fuel totals, next-service projection, the monthly window and the
// maintenance alert filter. Nothing here touches storage.
package calculo

import (
	"errors"

	"flota/internal/model"
	"flota/internal/money"

	"github.com/shopspring/decimal"
)

// ErrMontoPersonalizadoRequerido is returned when the override flag is set without an amount.
var ErrMontoPersonalizadoRequerido = errors.New("monto personalizado requerido")

// PoliticaPago is the truck policy copied onto a freight at settlement time.
type PoliticaPago struct {
	ModeloPago  model.ModeloPago
	TipoCalculo model.TipoCalculo
	MontoBase   decimal.Decimal
}

// PoliticaDe copies the policy fields of c by value.
func PoliticaDe(c *model.Camion) PoliticaPago {
	return PoliticaPago{
		ModeloPago:  c.ModeloPago,
		TipoCalculo: c.TipoCalculo,
		MontoBase:   c.MontoBase,
	}
}

// EntradaFlete is the trip input of a settlement.
type EntradaFlete struct {
	Ingreso                decimal.Decimal
	Peajes                 decimal.Decimal
	Viaticos               decimal.Decimal
	OtrosGastos            decimal.Decimal
	UsarMontoPersonalizado bool
	MontoPersonalizado     *decimal.Decimal
}

// Liquidacion is the settled result; every amount is at scale 2.
type Liquidacion struct {
	MontoCalculado decimal.Decimal
	MontoFinal     decimal.Decimal
	MontoAcordado  decimal.Decimal
	DireccionPago  model.DireccionPago
	Ganancia       decimal.Decimal
	Ingreso        decimal.Decimal
	Peajes         decimal.Decimal
	Viaticos       decimal.Decimal
	OtrosGastos    decimal.Decimal
}

// MontoCalculado doubles the base for round trips. MENSUAL uses the base as-is,
// like VIAJE: there is no monthly accrual rule.
func MontoCalculado(p PoliticaPago) decimal.Decimal {
	if p.TipoCalculo == model.CalculoIdaVuelta {
		return p.MontoBase.Mul(decimal.NewFromInt(2))
	}
	return p.MontoBase
}

// LiquidarFlete settles a trip under policy p.
func LiquidarFlete(p PoliticaPago, in EntradaFlete) (Liquidacion, error) {
	if in.UsarMontoPersonalizado && in.MontoPersonalizado == nil {
		return Liquidacion{}, ErrMontoPersonalizadoRequerido
	}

	// Trip inputs are normalized to their storage scale on entry so the stored
	// components always add up to the stored profit.
	calculado := money.Monto(MontoCalculado(p))
	final := calculado
	if in.UsarMontoPersonalizado {
		final = money.Monto(*in.MontoPersonalizado)
	}

	liq := Liquidacion{
		MontoCalculado: calculado,
		MontoFinal:     final,
		MontoAcordado:  final,
	}

	if p.ModeloPago == model.ModeloChoferPaga {
		// Rented truck: the owner records no trip revenue or costs, the rent is the profit.
		liq.DireccionPago = model.PorCobrar
		liq.Ingreso = money.Monto(decimal.Zero)
		liq.Peajes = money.Monto(decimal.Zero)
		liq.Viaticos = money.Monto(decimal.Zero)
		liq.OtrosGastos = money.Monto(decimal.Zero)
		liq.Ganancia = final
		return liq, nil
	}

	liq.DireccionPago = model.PorPagar
	liq.Ingreso = money.Monto(in.Ingreso)
	liq.Peajes = money.Monto(in.Peajes)
	liq.Viaticos = money.Monto(in.Viaticos)
	liq.OtrosGastos = money.Monto(in.OtrosGastos)
	// May be negative; a loss is a valid settlement.
	liq.Ganancia = money.Monto(liq.Ingreso.Sub(liq.Peajes).Sub(liq.Viaticos).Sub(liq.OtrosGastos).Sub(final))
	return liq, nil
}

// Aplicar writes the policy snapshot and settlement onto f.
func (l Liquidacion) Aplicar(f *model.Flete, p PoliticaPago) {
	f.TipoModelo = p.ModeloPago
	f.TipoCalculo = p.TipoCalculo
	f.MontoBase = money.Monto(p.MontoBase)
	f.MontoCalculado = l.MontoCalculado
	f.MontoFinal = l.MontoFinal
	f.MontoAcordado = l.MontoAcordado
	f.DireccionPago = l.DireccionPago
	f.Ganancia = l.Ganancia
	f.Ingreso = l.Ingreso
	f.Peajes = l.Peajes
	f.Viaticos = l.Viaticos
	f.OtrosGastos = l.OtrosGastos
}
