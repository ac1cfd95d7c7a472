package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModeloPago: who pays whom on a trip.
// DUENO_PAGA: the owner pays the driver a fee. CHOFER_PAGA: the driver rents the truck.
type ModeloPago string

const (
	ModeloDuenoPaga  ModeloPago = "DUENO_PAGA"
	ModeloChoferPaga ModeloPago = "CHOFER_PAGA"
)

func (m ModeloPago) Valido() bool { return m == ModeloDuenoPaga || m == ModeloChoferPaga }

// TipoCalculo: how the base trip amount is derived.
type TipoCalculo string

const (
	CalculoViaje     TipoCalculo = "VIAJE"
	CalculoIdaVuelta TipoCalculo = "IDA_VUELTA"
	CalculoMensual   TipoCalculo = "MENSUAL"
)

func (t TipoCalculo) Valido() bool {
	return t == CalculoViaje || t == CalculoIdaVuelta || t == CalculoMensual
}

// Camion is a fleet vehicle. ModeloPago, TipoCalculo and MontoBase form its
// payment policy; freights copy them at settlement time.
type Camion struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Placa             string    `gorm:"type:varchar(20);not null"`
	Marca             *string   `gorm:"type:varchar(60)"`
	Modelo            *string   `gorm:"type:varchar(60)"`
	Anio              *int
	ModeloPago        ModeloPago      `gorm:"type:varchar(20);not null;default:'DUENO_PAGA'"`
	TipoCalculo       TipoCalculo     `gorm:"type:varchar(20);not null;default:'VIAJE'"`
	MontoBase         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	KilometrajeActual int             `gorm:"not null;default:0"`
	Activo            bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides GORM's default pluralization (camions → camiones).
func (Camion) TableName() string { return "camiones" }
