package calculo

import (
	"testing"
	"time"

	"flota/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ── LiquidarFlete ────────────────────────────────────────────────────────────

func TestLiquidarIdaVueltaDuenoPaga(t *testing.T) {
	p := PoliticaPago{ModeloPago: model.ModeloDuenoPaga, TipoCalculo: model.CalculoIdaVuelta, MontoBase: dec("500.00")}
	liq, err := LiquidarFlete(p, EntradaFlete{
		Ingreso:     dec("1200.00"),
		Peajes:      dec("50.00"),
		Viaticos:    dec("30.00"),
		OtrosGastos: dec("20.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "1000.00", liq.MontoCalculado.StringFixed(2))
	assert.Equal(t, "1000.00", liq.MontoFinal.StringFixed(2))
	assert.Equal(t, "1000.00", liq.MontoAcordado.StringFixed(2))
	assert.Equal(t, "100.00", liq.Ganancia.StringFixed(2))
	assert.Equal(t, model.PorPagar, liq.DireccionPago)
}

func TestLiquidarIdaVueltaRedondeaBaseDoble(t *testing.T) {
	p := PoliticaPago{ModeloPago: model.ModeloDuenoPaga, TipoCalculo: model.CalculoIdaVuelta, MontoBase: dec("333.335")}
	liq, err := LiquidarFlete(p, EntradaFlete{})
	require.NoError(t, err)
	assert.Equal(t, "666.67", liq.MontoCalculado.StringFixed(2))
}

func TestLiquidarViajeYMensualUsanBase(t *testing.T) {
	for _, tc := range []model.TipoCalculo{model.CalculoViaje, model.CalculoMensual} {
		p := PoliticaPago{ModeloPago: model.ModeloDuenoPaga, TipoCalculo: tc, MontoBase: dec("750.50")}
		liq, err := LiquidarFlete(p, EntradaFlete{Ingreso: dec("2000")})
		require.NoError(t, err)
		assert.Equal(t, "750.50", liq.MontoCalculado.StringFixed(2), string(tc))
		assert.Equal(t, "1249.50", liq.Ganancia.StringFixed(2), string(tc))
	}
}

func TestLiquidarChoferPagaIgnoraEconomiaDelViaje(t *testing.T) {
	p := PoliticaPago{ModeloPago: model.ModeloChoferPaga, TipoCalculo: model.CalculoViaje, MontoBase: dec("400")}
	liq, err := LiquidarFlete(p, EntradaFlete{
		Ingreso:     dec("9999.99"),
		Peajes:      dec("100"),
		Viaticos:    dec("55.5"),
		OtrosGastos: dec("12"),
	})
	require.NoError(t, err)

	assert.True(t, liq.Ingreso.IsZero())
	assert.True(t, liq.Peajes.IsZero())
	assert.True(t, liq.Viaticos.IsZero())
	assert.True(t, liq.OtrosGastos.IsZero())
	assert.Equal(t, "400.00", liq.Ganancia.StringFixed(2))
	assert.True(t, liq.Ganancia.Equal(liq.MontoFinal))
	assert.Equal(t, model.PorCobrar, liq.DireccionPago)
}

func TestLiquidarChoferPagaConMontoPersonalizado(t *testing.T) {
	p := PoliticaPago{ModeloPago: model.ModeloChoferPaga, TipoCalculo: model.CalculoIdaVuelta, MontoBase: dec("400")}
	liq, err := LiquidarFlete(p, EntradaFlete{Ingreso: dec("10"), UsarMontoPersonalizado: true, MontoPersonalizado: decPtr("650.255")})
	require.NoError(t, err)
	assert.Equal(t, "800.00", liq.MontoCalculado.StringFixed(2))
	assert.Equal(t, "650.26", liq.MontoFinal.StringFixed(2))
	assert.Equal(t, "650.26", liq.Ganancia.StringFixed(2))
}

func TestLiquidarMontoPersonalizadoRequerido(t *testing.T) {
	p := PoliticaPago{ModeloPago: model.ModeloDuenoPaga, TipoCalculo: model.CalculoViaje, MontoBase: dec("100")}
	_, err := LiquidarFlete(p, EntradaFlete{UsarMontoPersonalizado: true})
	assert.ErrorIs(t, err, ErrMontoPersonalizadoRequerido)
}

func TestLiquidarMontoPersonalizadoIgnoradoSinFlag(t *testing.T) {
	p := PoliticaPago{ModeloPago: model.ModeloDuenoPaga, TipoCalculo: model.CalculoViaje, MontoBase: dec("100")}
	liq, err := LiquidarFlete(p, EntradaFlete{MontoPersonalizado: decPtr("999")})
	require.NoError(t, err)
	assert.Equal(t, "100.00", liq.MontoFinal.StringFixed(2))
}

func TestLiquidarPerdidaNoSeRecorta(t *testing.T) {
	p := PoliticaPago{ModeloPago: model.ModeloDuenoPaga, TipoCalculo: model.CalculoViaje, MontoBase: dec("800")}
	liq, err := LiquidarFlete(p, EntradaFlete{Ingreso: dec("500"), Peajes: dec("20.10")})
	require.NoError(t, err)
	assert.Equal(t, "-320.10", liq.Ganancia.StringFixed(2))
}

func TestLiquidarEsIdempotente(t *testing.T) {
	p := PoliticaPago{ModeloPago: model.ModeloDuenoPaga, TipoCalculo: model.CalculoIdaVuelta, MontoBase: dec("123.45")}
	in := EntradaFlete{Ingreso: dec("1000.005"), Peajes: dec("10.004"), Viaticos: dec("3.333"), OtrosGastos: dec("0.015")}
	first, err := LiquidarFlete(p, in)
	require.NoError(t, err)

	// Feed the stored (rounded) values back in.
	var f model.Flete
	first.Aplicar(&f, p)
	again, err := LiquidarFlete(
		PoliticaPago{ModeloPago: f.TipoModelo, TipoCalculo: f.TipoCalculo, MontoBase: f.MontoBase},
		EntradaFlete{Ingreso: f.Ingreso, Peajes: f.Peajes, Viaticos: f.Viaticos, OtrosGastos: f.OtrosGastos},
	)
	require.NoError(t, err)
	second := model.Flete{}
	again.Aplicar(&second, p)

	assert.Equal(t, f.MontoCalculado.StringFixed(2), second.MontoCalculado.StringFixed(2))
	assert.Equal(t, f.MontoFinal.StringFixed(2), second.MontoFinal.StringFixed(2))
	assert.Equal(t, f.Ganancia.StringFixed(2), second.Ganancia.StringFixed(2))
	assert.Equal(t, "739.76", f.Ganancia.StringFixed(2))
}

func TestPoliticaDeCopiaPorValor(t *testing.T) {
	c := &model.Camion{ModeloPago: model.ModeloDuenoPaga, TipoCalculo: model.CalculoViaje, MontoBase: dec("100")}
	p := PoliticaDe(c)
	c.ModeloPago = model.ModeloChoferPaga
	c.MontoBase = dec("999")
	assert.Equal(t, model.ModeloDuenoPaga, p.ModeloPago)
	assert.Equal(t, "100.00", p.MontoBase.StringFixed(2))
}

// ── TotalCombustible ─────────────────────────────────────────────────────────

func TestTotalCombustible(t *testing.T) {
	c, err := TotalCombustible(dec("25.5"), dec("3.899"))
	require.NoError(t, err)
	assert.Equal(t, "25.500", c.Galones.StringFixed(3))
	assert.Equal(t, "3.899", c.PrecioPorGalon.StringFixed(3))
	assert.Equal(t, "99.42", c.Total.StringFixed(2)) // 99.4245
}

func TestTotalCombustibleReproducibleDesdeValoresGuardados(t *testing.T) {
	inputs := [][2]string{{"10.1234", "4.5678"}, {"0.0015", "1000"}, {"33.333", "3.333"}, {"1", "0.0005"}}
	for _, in := range inputs {
		c, err := TotalCombustible(dec(in[0]), dec(in[1]))
		require.NoError(t, err, in)
		again, err := TotalCombustible(c.Galones, c.PrecioPorGalon)
		require.NoError(t, err)
		assert.True(t, c.Total.Equal(again.Total), in)
		assert.True(t, c.Total.Equal(c.Galones.Mul(c.PrecioPorGalon).Round(2)), in)
	}
}

func TestTotalCombustibleRechazaNoPositivos(t *testing.T) {
	_, err := TotalCombustible(decimal.Zero, dec("3"))
	assert.ErrorIs(t, err, ErrGalonesNoPositivos)
	_, err = TotalCombustible(dec("-1"), dec("3"))
	assert.ErrorIs(t, err, ErrGalonesNoPositivos)
	_, err = TotalCombustible(dec("10"), decimal.Zero)
	assert.ErrorIs(t, err, ErrPrecioNoPositivo)
	_, err = TotalCombustible(dec("10"), dec("-0.5"))
	assert.ErrorIs(t, err, ErrPrecioNoPositivo)
	// Positive but rounds to zero at scale 3.
	_, err = TotalCombustible(dec("0.0001"), dec("3"))
	assert.ErrorIs(t, err, ErrGalonesNoPositivos)
}

// ── Planes ───────────────────────────────────────────────────────────────────

func TestProximoServicio(t *testing.T) {
	km, err := ProximoServicio(10000, 5000)
	require.NoError(t, err)
	assert.Equal(t, 15000, km)

	_, err = ProximoServicio(10000, 0)
	assert.ErrorIs(t, err, ErrCadaKmInvalido)
	_, err = ProximoServicio(-1, 100)
	assert.ErrorIs(t, err, ErrUltimoServicioKm)
}

func TestRegistrarServicioAvanzaPlan(t *testing.T) {
	p := &model.PlanMantenimiento{CadaKm: 5000, UltimoServicioKm: 10000, ProximoKm: 15000}
	RegistrarServicio(p, 15200)
	assert.Equal(t, 15200, p.UltimoServicioKm)
	assert.Equal(t, 20200, p.ProximoKm)

	// Lower readings are accepted as given.
	RegistrarServicio(p, 9000)
	assert.Equal(t, 9000, p.UltimoServicioKm)
	assert.Equal(t, 14000, p.ProximoKm)
}

func plan(tipo string, proximo, actual int, activo bool) model.PlanMantenimiento {
	camionID := uuid.New()
	return model.PlanMantenimiento{
		ID:        uuid.New(),
		CamionID:  camionID,
		Tipo:      tipo,
		ProximoKm: proximo,
		Activo:    activo,
		Camion:    &model.Camion{ID: camionID, Placa: "ABC-" + tipo, KilometrajeActual: actual},
	}
}

func TestFiltrarAlertas(t *testing.T) {
	planes := []model.PlanMantenimiento{
		plan("aceite", 15000, 14800, true),    // 200 → incluido
		plan("vencido", 15000, 15500, true),   // -500 → excluido
		plan("lejano", 20000, 14000, true),    // 6000 → excluido
		plan("limite", 12000, 11500, true),    // 500 → incluido
		plan("justo", 11000, 11000, true),     // 0 → incluido
		plan("inactivo", 15000, 14900, false), // inactivo → excluido
	}

	alertas := FiltrarAlertas(planes, UmbralAlertaKm)
	require.Len(t, alertas, 3)
	assert.Equal(t, "justo", alertas[0].Tipo)
	assert.Equal(t, "limite", alertas[1].Tipo)
	assert.Equal(t, "aceite", alertas[2].Tipo)
	assert.Equal(t, 200, alertas[2].RestanteKm)
	assert.Equal(t, 14800, alertas[2].KilometrajeActual)
	assert.Equal(t, "ABC-aceite", alertas[2].Placa)
}

func TestFiltrarAlertasVacioNoEsNil(t *testing.T) {
	alertas := FiltrarAlertas(nil, UmbralAlertaKm)
	assert.NotNil(t, alertas)
	assert.Empty(t, alertas)
}

// ── Ventana mensual ──────────────────────────────────────────────────────────

func TestVentanaMensual(t *testing.T) {
	v, err := VentanaMensual("2024-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), v.Desde)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), v.Hasta)
	assert.True(t, v.Contiene(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, v.Contiene(v.Hasta))
	assert.True(t, v.Contiene(v.Desde))
	assert.False(t, v.Contiene(v.Desde.Add(-time.Nanosecond)))
}

func TestVentanaMensualInvalida(t *testing.T) {
	for _, mes := range []string{"", "2024", "2024-13", "24-01", "2024/01"} {
		_, err := VentanaMensual(mes)
		assert.ErrorIs(t, err, ErrMesInvalido, mes)
	}
}
