package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CargaCombustible is a fill-up. Total = round(Galones × PrecioPorGalon, 2).
type CargaCombustible struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CamionID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChoferID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha          time.Time       `gorm:"not null;index"`
	Kilometraje    int             `gorm:"not null"`
	Galones        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PrecioPorGalon decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estacion       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (CargaCombustible) TableName() string { return "cargas_combustible" }
