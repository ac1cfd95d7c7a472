package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"flota/internal/apierror"
	"flota/internal/model"
	"flota/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoCamion(t *testing.T, s *Store, tenant uuid.UUID, placa string) *model.Camion {
	t.Helper()
	c := &model.Camion{TenantID: tenant, Placa: placa, ModeloPago: model.ModeloDuenoPaga, TipoCalculo: model.CalculoViaje, Activo: true}
	require.NoError(t, s.Camiones().Create(context.Background(), c))
	return c
}

func TestTenantAislado(t *testing.T) {
	s := New()
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	c := nuevoCamion(t, s, a, "AAA-111")

	_, err := s.Camiones().FindByID(ctx, b, c.ID)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))

	err = s.Camiones().Delete(ctx, b, c.ID)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))

	lista, err := s.Camiones().List(ctx, b, false)
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestPlacaDuplicadaPorTenant(t *testing.T) {
	s := New()
	a, b := uuid.New(), uuid.New()
	nuevoCamion(t, s, a, "AAA-111")

	err := s.Camiones().Create(context.Background(), &model.Camion{TenantID: a, Placa: "AAA-111"})
	assert.True(t, apierror.Is(err, apierror.KindConflict))

	// Same plate in another tenant is fine.
	nuevoCamion(t, s, b, "AAA-111")
}

func TestWithTx_RollbackDescartaEscrituras(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenant := uuid.New()
	c := nuevoCamion(t, s, tenant, "AAA-111")

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx repository.Store) error {
		require.NoError(t, tx.Camiones().AvanzarKilometraje(ctx, tenant, c.ID, 5000))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Camiones().FindByID(ctx, tenant, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.KilometrajeActual)
}

func TestFallarEn(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenant := uuid.New()
	s.FallarEn("mantenimientos.Create", errors.New("disk full"))

	err := s.Mantenimientos().Create(ctx, &model.Mantenimiento{TenantID: tenant})
	assert.True(t, apierror.Is(err, apierror.KindInternal))

	s.FallarEn("mantenimientos.Create", nil)
	assert.NoError(t, s.Mantenimientos().Create(ctx, &model.Mantenimiento{TenantID: tenant}))
}

func TestAvanzarKilometrajeMonotono(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenant := uuid.New()
	c := nuevoCamion(t, s, tenant, "AAA-111")

	require.NoError(t, s.Camiones().AvanzarKilometraje(ctx, tenant, c.ID, 1000))
	require.NoError(t, s.Camiones().AvanzarKilometraje(ctx, tenant, c.ID, 800))

	got, _ := s.Camiones().FindByID(ctx, tenant, c.ID)
	assert.Equal(t, 1000, got.KilometrajeActual)
}

func TestPlanActivoUnicoPorTipo(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenant := uuid.New()
	c := nuevoCamion(t, s, tenant, "AAA-111")

	p := &model.PlanMantenimiento{TenantID: tenant, CamionID: c.ID, Tipo: "aceite", CadaKm: 5000, ProximoKm: 5000, Activo: true}
	require.NoError(t, s.Planes().Create(ctx, p))

	dup := &model.PlanMantenimiento{TenantID: tenant, CamionID: c.ID, Tipo: "aceite", CadaKm: 8000, ProximoKm: 8000, Activo: true}
	assert.True(t, apierror.Is(s.Planes().Create(ctx, dup), apierror.KindConflict))

	// An inactive plan of the same type does not collide.
	dup.Activo = false
	require.NoError(t, s.Planes().Create(ctx, dup))

	got, err := s.Planes().FindActivoForUpdate(ctx, tenant, c.ID, "aceite")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	none, err := s.Planes().FindActivoForUpdate(ctx, tenant, c.ID, "frenos")
	assert.NoError(t, err)
	assert.Nil(t, none)
}

func TestListActivosConCamion(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenant := uuid.New()
	c := nuevoCamion(t, s, tenant, "AAA-111")
	require.NoError(t, s.Planes().Create(ctx, &model.PlanMantenimiento{TenantID: tenant, CamionID: c.ID, Tipo: "b", ProximoKm: 9000, CadaKm: 9000, Activo: true}))
	require.NoError(t, s.Planes().Create(ctx, &model.PlanMantenimiento{TenantID: tenant, CamionID: c.ID, Tipo: "a", ProximoKm: 3000, CadaKm: 3000, Activo: true}))
	require.NoError(t, s.Planes().Create(ctx, &model.PlanMantenimiento{TenantID: tenant, CamionID: c.ID, Tipo: "c", ProximoKm: 1000, CadaKm: 1000, Activo: false}))

	planes, err := s.Planes().ListActivosConCamion(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, planes, 2)
	assert.Equal(t, "a", planes[0].Tipo)
	require.NotNil(t, planes[0].Camion)
	assert.Equal(t, "AAA-111", planes[0].Camion.Placa)
}

func TestSumCompletadosVentanaSemiabierta(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenant := uuid.New()
	desde := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	hasta := desde.AddDate(0, 1, 0)

	add := func(fecha time.Time, estado model.EstadoFlete, ingreso string) {
		require.NoError(t, s.Fletes().Create(ctx, &model.Flete{
			TenantID: tenant, Fecha: fecha, Estado: estado,
			Ingreso: decimal.RequireFromString(ingreso), Ganancia: decimal.RequireFromString(ingreso),
		}))
	}
	add(desde, model.FleteCompletado, "100.00")
	add(hasta.Add(-time.Nanosecond), model.FleteCompletado, "50.00")
	add(hasta, model.FleteCompletado, "999.00")
	add(desde.Add(time.Hour), model.FletePendiente, "999.00")

	tot, err := s.Fletes().SumCompletados(ctx, tenant, desde, hasta)
	require.NoError(t, err)
	assert.Equal(t, "150.00", tot.Ingreso.StringFixed(2))
}

func TestDeleteCamionConRegistrosEsConflicto(t *testing.T) {
	s := New()
	ctx := context.Background()
	tenant := uuid.New()
	c := nuevoCamion(t, s, tenant, "AAA-111")
	require.NoError(t, s.Mantenimientos().Create(ctx, &model.Mantenimiento{TenantID: tenant, CamionID: c.ID, Tipo: "aceite"}))

	assert.True(t, apierror.Is(s.Camiones().Delete(ctx, tenant, c.ID), apierror.KindConflict))
}
