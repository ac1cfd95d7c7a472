package repository

import (
	"context"
	"errors"
	"time"

	"flota/internal/apierror"
	"flota/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Every repository method takes the tenant explicitly. A row of another tenant
// is reported exactly like a missing one (apierror.KindNotFound).

type CamionRepository interface {
	Create(ctx context.Context, c *model.Camion) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Camion, error)
	// FindByIDForUpdate locks the truck row. Must run inside WithTx.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*model.Camion, error)
	List(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]model.Camion, error)
	Update(ctx context.Context, c *model.Camion) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// AvanzarKilometraje raises kilometraje_actual to km; lower readings are ignored.
	AvanzarKilometraje(ctx context.Context, tenantID, id uuid.UUID, km int) error
}

type ChoferRepository interface {
	Create(ctx context.Context, c *model.Chofer) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Chofer, error)
	List(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]model.Chofer, error)
	Update(ctx context.Context, c *model.Chofer) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// FleteFilter narrows List. Zero values mean "any".
type FleteFilter struct {
	CamionID *uuid.UUID
	ChoferID *uuid.UUID
	Estado   model.EstadoFlete
	Desde    *time.Time // inclusive
	Hasta    *time.Time // exclusive
}

// TotalesFletes are the month sums over completed freights.
type TotalesFletes struct {
	Ingreso  decimal.Decimal
	Ganancia decimal.Decimal
}

type FleteRepository interface {
	Create(ctx context.Context, f *model.Flete) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Flete, error)
	List(ctx context.Context, tenantID uuid.UUID, filter FleteFilter) ([]model.Flete, error)
	Update(ctx context.Context, f *model.Flete) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SumCompletados(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (TotalesFletes, error)
}

type CombustibleFilter struct {
	CamionID *uuid.UUID
	Desde    *time.Time
	Hasta    *time.Time
}

type CombustibleRepository interface {
	Create(ctx context.Context, c *model.CargaCombustible) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.CargaCombustible, error)
	List(ctx context.Context, tenantID uuid.UUID, filter CombustibleFilter) ([]model.CargaCombustible, error)
	Update(ctx context.Context, c *model.CargaCombustible) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	SumTotal(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error)
}

type PlanFilter struct {
	CamionID *uuid.UUID
	Activo   *bool
}

type PlanMantenimientoRepository interface {
	Create(ctx context.Context, p *model.PlanMantenimiento) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.PlanMantenimiento, error)
	// FindByIDForUpdate locks the plan row. Must run inside WithTx.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*model.PlanMantenimiento, error)
	List(ctx context.Context, tenantID uuid.UUID, filter PlanFilter) ([]model.PlanMantenimiento, error)
	Update(ctx context.Context, p *model.PlanMantenimiento) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// FindActivoForUpdate locks the active plan of (camion, tipo). Returns
	// (nil, nil) when there is none. Must run inside WithTx.
	FindActivoForUpdate(ctx context.Context, tenantID, camionID uuid.UUID, tipo string) (*model.PlanMantenimiento, error)
	// ListActivosConCamion returns active plans with Camion loaded.
	ListActivosConCamion(ctx context.Context, tenantID uuid.UUID) ([]model.PlanMantenimiento, error)
}

type MantenimientoFilter struct {
	CamionID *uuid.UUID
	Tipo     string
	Desde    *time.Time
	Hasta    *time.Time
}

// MantenimientoRepository has no Update: service records are immutable.
type MantenimientoRepository interface {
	Create(ctx context.Context, m *model.Mantenimiento) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Mantenimiento, error)
	List(ctx context.Context, tenantID uuid.UUID, filter MantenimientoFilter) ([]model.Mantenimiento, error)
	SumCosto(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error)
}

// Store is the persistence collaborator of the services. WithTx runs fn in a
// single transaction with a Store bound to it: fn's writes commit together or
// not at all.
type Store interface {
	Camiones() CamionRepository
	Choferes() ChoferRepository
	Fletes() FleteRepository
	Combustible() CombustibleRepository
	Planes() PlanMantenimientoRepository
	Mantenimientos() MantenimientoRepository
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct{ db *gorm.DB }

// NewStore returns the PostgreSQL-backed Store.
func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Camiones() CamionRepository         { return NewCamionRepository(s.db) }
func (s *gormStore) Choferes() ChoferRepository         { return NewChoferRepository(s.db) }
func (s *gormStore) Fletes() FleteRepository            { return NewFleteRepository(s.db) }
func (s *gormStore) Combustible() CombustibleRepository { return NewCombustibleRepository(s.db) }
func (s *gormStore) Planes() PlanMantenimientoRepository {
	return NewPlanMantenimientoRepository(s.db)
}
func (s *gormStore) Mantenimientos() MantenimientoRepository {
	return NewMantenimientoRepository(s.db)
}

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// ── Error translation ─────────────────────────────────────────────────────────

// translate maps gorm errors to the service taxonomy. entidad names the entity
// in not-found/conflict messages.
func translate(err error, entidad string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierror.NoEncontrado(entidad + " no encontrado")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierror.Conflicto(entidad + " duplicado")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apierror.Conflicto(entidad + " tiene registros relacionados")
	default:
		var ae *apierror.Error
		if errors.As(err, &ae) {
			return err
		}
		return apierror.Interno(err)
	}
}

// checkAffected turns a zero-row update/delete into not-found.
func checkAffected(res *gorm.DB, entidad string) error {
	if res.Error != nil {
		return translate(res.Error, entidad)
	}
	if res.RowsAffected == 0 {
		return apierror.NoEncontrado(entidad + " no encontrado")
	}
	return nil
}
