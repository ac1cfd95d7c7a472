package model

import (
	"time"

	"github.com/google/uuid"
)

// Chofer is a driver. Documento is unique within a tenant.
type Chofer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre    string    `gorm:"not null"`
	Documento string    `gorm:"type:varchar(30);not null"`
	Telefono  *string   `gorm:"type:varchar(30)"`
	Licencia  *string   `gorm:"type:varchar(30)"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Chofer) TableName() string { return "choferes" }
