package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanMantenimiento is a recurring odometer-based service schedule.
// ProximoKm = UltimoServicioKm + CadaKm. At most one active plan per (camion, tipo).
type PlanMantenimiento struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CamionID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo             string    `gorm:"type:varchar(80);not null"`
	CadaKm           int       `gorm:"not null"`
	UltimoServicioKm int       `gorm:"not null;default:0"`
	ProximoKm        int       `gorm:"not null"`
	Activo           bool      `gorm:"not null;default:true"`
	Descripcion      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Camion *Camion `gorm:"foreignKey:CamionID"`
}

func (PlanMantenimiento) TableName() string { return "planes_mantenimiento" }

// Mantenimiento is an immutable log entry of a service actually performed.
// Records are never updated; a correction is a new record.
type Mantenimiento struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CamionID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha       time.Time       `gorm:"not null;index"`
	Tipo        string          `gorm:"type:varchar(80);not null"`
	Kilometraje int             `gorm:"not null"`
	Costo       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Descripcion *string
	Taller      *string
	CreatedAt   time.Time
}
