package repository

import (
	"context"

	"flota/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// updatableOmit are the columns Update never rewrites.
var updatableOmit = []string{"id", "tenant_id", "created_at", clause.Associations}

// ── Camiones ──────────────────────────────────────────────────────────────────

type camionRepo struct{ db *gorm.DB }

func NewCamionRepository(db *gorm.DB) CamionRepository { return &camionRepo{db: db} }

func (r *camionRepo) Create(ctx context.Context, c *model.Camion) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "camión")
}

func (r *camionRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Camion, error) {
	var c model.Camion
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&c).Error
	if err != nil {
		return nil, translate(err, "camión")
	}
	return &c, nil
}

func (r *camionRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*model.Camion, error) {
	var c model.Camion
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&c).Error
	if err != nil {
		return nil, translate(err, "camión")
	}
	return &c, nil
}

func (r *camionRepo) List(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]model.Camion, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var camiones []model.Camion
	err := q.Order("placa ASC").Find(&camiones).Error
	return camiones, translate(err, "camión")
}

func (r *camionRepo) Update(ctx context.Context, c *model.Camion) error {
	res := r.db.WithContext(ctx).Model(c).
		Where("tenant_id = ?", c.TenantID).
		Select("*").Omit(updatableOmit...).
		Updates(c)
	return checkAffected(res, "camión")
}

func (r *camionRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&model.Camion{})
	return checkAffected(res, "camión")
}

func (r *camionRepo) AvanzarKilometraje(ctx context.Context, tenantID, id uuid.UUID, km int) error {
	res := r.db.WithContext(ctx).Model(&model.Camion{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("kilometraje_actual", gorm.Expr("GREATEST(kilometraje_actual, ?)", km))
	return checkAffected(res, "camión")
}

// ── Choferes ──────────────────────────────────────────────────────────────────

type choferRepo struct{ db *gorm.DB }

func NewChoferRepository(db *gorm.DB) ChoferRepository { return &choferRepo{db: db} }

func (r *choferRepo) Create(ctx context.Context, c *model.Chofer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "chofer")
}

func (r *choferRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Chofer, error) {
	var c model.Chofer
	err := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&c).Error
	if err != nil {
		return nil, translate(err, "chofer")
	}
	return &c, nil
}

func (r *choferRepo) List(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]model.Chofer, error) {
	q := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var choferes []model.Chofer
	err := q.Order("nombre ASC").Find(&choferes).Error
	return choferes, translate(err, "chofer")
}

func (r *choferRepo) Update(ctx context.Context, c *model.Chofer) error {
	res := r.db.WithContext(ctx).Model(c).
		Where("tenant_id = ?", c.TenantID).
		Select("*").Omit(updatableOmit...).
		Updates(c)
	return checkAffected(res, "chofer")
}

func (r *choferRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&model.Chofer{})
	return checkAffected(res, "chofer")
}
