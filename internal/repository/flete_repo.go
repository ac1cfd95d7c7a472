package repository

import (
	"context"
	"time"

	"flota/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fleteRepo struct{ db *gorm.DB }

func NewFleteRepository(db *gorm.DB) FleteRepository { return &fleteRepo{db: db} }

func (r *fleteRepo) Create(ctx context.Context, f *model.Flete) error {
	return translate(r.db.WithContext(ctx).Omit("Camion", "Chofer").Create(f).Error, "flete")
}

func (r *fleteRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Flete, error) {
	var f model.Flete
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&f).Error
	if err != nil {
		return nil, translate(err, "flete")
	}
	return &f, nil
}

func (r *fleteRepo) List(ctx context.Context, tenantID uuid.UUID, filter FleteFilter) ([]model.Flete, error) {
	q := r.db.WithContext(ctx).Model(&model.Flete{}).Where("tenant_id = ?", tenantID)
	if filter.CamionID != nil {
		q = q.Where("camion_id = ?", *filter.CamionID)
	}
	if filter.ChoferID != nil {
		q = q.Where("chofer_id = ?", *filter.ChoferID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != nil {
		q = q.Where("fecha >= ?", *filter.Desde)
	}
	if filter.Hasta != nil {
		q = q.Where("fecha < ?", *filter.Hasta)
	}
	var fletes []model.Flete
	err := q.Order("fecha DESC").Find(&fletes).Error
	return fletes, translate(err, "flete")
}

func (r *fleteRepo) Update(ctx context.Context, f *model.Flete) error {
	res := r.db.WithContext(ctx).Model(f).
		Where("tenant_id = ?", f.TenantID).
		Select("*").Omit(updatableOmit...).
		Updates(f)
	return checkAffected(res, "flete")
}

func (r *fleteRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&model.Flete{})
	return checkAffected(res, "flete")
}

func (r *fleteRepo) SumCompletados(ctx context.Context, tenantID uuid.UUID, desde, hasta time.Time) (TotalesFletes, error) {
	var tot TotalesFletes
	err := r.db.WithContext(ctx).Model(&model.Flete{}).
		Select("COALESCE(SUM(ingreso), 0) AS ingreso, COALESCE(SUM(ganancia), 0) AS ganancia").
		Where("tenant_id = ? AND estado = ? AND fecha >= ? AND fecha < ?", tenantID, model.FleteCompletado, desde, hasta).
		Scan(&tot).Error
	return tot, translate(err, "flete")
}
