package repository

import (
	"context"
	"time"

	"flota/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type combustibleRepo struct{ db *gorm.DB }

func NewCombustibleRepository(db *gorm.DB) CombustibleRepository { return &combustibleRepo{db: db} }

func (r *combustibleRepo) Create(ctx context.Context, c *model.CargaCombustible) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "carga de combustible")
}

func (r *combustibleRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.CargaCombustible, error) {
	var c model.CargaCombustible
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&c).Error
	if err != nil {
		return nil, translate(err, "carga de combustible")
	}
	return &c, nil
}

func (r *combustibleRepo) List(ctx context.Context, tenantID uuid.UUID, filter CombustibleFilter) ([]model.CargaCombustible, error) {
	q := r.db.WithContext(ctx).Model(&model.CargaCombustible{}).Where("tenant_id = ?", tenantID)
	if filter.CamionID != nil {
		q = q.Where("camion_id = ?", *filter.CamionID)
	}
	if filter.Desde != nil {
		q = q.Where("fecha >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("fecha < ?", *filter.Hasta)
	}
	var cargas []model.CargaCombustible
	err := q.Order("fecha DESC").Find(&cargas).Error
	return cargas, translate(err, "carga de combustible")
}

func (r *combustibleRepo) Update(ctx context.Context, c *model.CargaCombustible) error {
	res := r.db.WithContext(ctx).Model(c).
		Where("tenant_id = ?", c.TenantID).
		Select("*").Omit(updatableOmit...).
		Updates(c)
	return checkAffected(res, "carga de combustible")
}

func (r *combustibleRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&model.CargaCombustible{})
	return checkAffected(res, "carga de combustible")
}

func (r *combustibleRepo) SumTotal(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.CargaCombustible{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("tenant_id = ? AND fecha >= ? AND fecha < ?", tenantID, desde, hasta).
		Scan(&row).Error
	return row.Total, translate(err, "carga de combustible")
}
