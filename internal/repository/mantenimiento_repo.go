package repository

import (
	"context"
	"errors"
	"time"

	"flota/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ── Planes ────────────────────────────────────────────────────────────────────

type planRepo struct{ db *gorm.DB }

func NewPlanMantenimientoRepository(db *gorm.DB) PlanMantenimientoRepository {
	return &planRepo{db: db}
}

func (r *planRepo) Create(ctx context.Context, p *model.PlanMantenimiento) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error, "plan de mantenimiento")
}

func (r *planRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.PlanMantenimiento, error) {
	var p model.PlanMantenimiento
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&p).Error
	if err != nil {
		return nil, translate(err, "plan de mantenimiento")
	}
	return &p, nil
}

func (r *planRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*model.PlanMantenimiento, error) {
	var p model.PlanMantenimiento
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error
	if err != nil {
		return nil, translate(err, "plan de mantenimiento")
	}
	return &p, nil
}

func (r *planRepo) List(ctx context.Context, tenantID uuid.UUID, filter PlanFilter) ([]model.PlanMantenimiento, error) {
	q := r.db.WithContext(ctx).Model(&model.PlanMantenimiento{}).Where("tenant_id = ?", tenantID)
	if filter.CamionID != nil {
		q = q.Where("camion_id = ?", *filter.CamionID)
	}
	if filter.Activo != nil {
		q = q.Where("activo = ?", *filter.Activo)
	}
	var planes []model.PlanMantenimiento
	err := q.Order("proximo_km ASC").Find(&planes).Error
	return planes, translate(err, "plan de mantenimiento")
}

func (r *planRepo) Update(ctx context.Context, p *model.PlanMantenimiento) error {
	res := r.db.WithContext(ctx).Model(p).
		Where("tenant_id = ?", p.TenantID).
		Select("*").Omit(updatableOmit...).
		Updates(p)
	return checkAffected(res, "plan de mantenimiento")
}

func (r *planRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&model.PlanMantenimiento{})
	return checkAffected(res, "plan de mantenimiento")
}

func (r *planRepo) FindActivoForUpdate(ctx context.Context, tenantID, camionID uuid.UUID, tipo string) (*model.PlanMantenimiento, error) {
	var p model.PlanMantenimiento
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND camion_id = ? AND tipo = ? AND activo = ?", tenantID, camionID, tipo, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "plan de mantenimiento")
	}
	return &p, nil
}

func (r *planRepo) ListActivosConCamion(ctx context.Context, tenantID uuid.UUID) ([]model.PlanMantenimiento, error) {
	var planes []model.PlanMantenimiento
	err := r.db.WithContext(ctx).
		Preload("Camion", "tenant_id = ?", tenantID).
		Where("tenant_id = ? AND activo = ?", tenantID, true).
		Order("proximo_km ASC").
		Find(&planes).Error
	return planes, translate(err, "plan de mantenimiento")
}

// ── Servicios realizados ──────────────────────────────────────────────────────

type mantenimientoRepo struct{ db *gorm.DB }

func NewMantenimientoRepository(db *gorm.DB) MantenimientoRepository {
	return &mantenimientoRepo{db: db}
}

func (r *mantenimientoRepo) Create(ctx context.Context, m *model.Mantenimiento) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "mantenimiento")
}

func (r *mantenimientoRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Mantenimiento, error) {
	var m model.Mantenimiento
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&m).Error
	if err != nil {
		return nil, translate(err, "mantenimiento")
	}
	return &m, nil
}

func (r *mantenimientoRepo) List(ctx context.Context, tenantID uuid.UUID, filter MantenimientoFilter) ([]model.Mantenimiento, error) {
	q := r.db.WithContext(ctx).Model(&model.Mantenimiento{}).Where("tenant_id = ?", tenantID)
	if filter.CamionID != nil {
		q = q.Where("camion_id = ?", *filter.CamionID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.Desde != nil {
		q = q.Where("fecha >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("fecha < ?", *filter.Hasta)
	}
	var registros []model.Mantenimiento
	err := q.Order("fecha DESC").Find(&registros).Error
	return registros, translate(err, "mantenimiento")
}

func (r *mantenimientoRepo) SumCosto(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Mantenimiento{}).
		Select("COALESCE(SUM(costo), 0) AS total").
		Where("tenant_id = ? AND fecha >= ? AND fecha < ?", tenantID, desde, hasta).
		Scan(&row).Error
	return row.Total, translate(err, "mantenimiento")
}
