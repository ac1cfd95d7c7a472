package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DireccionPago: POR_COBRAR when the driver owes the owner, POR_PAGAR when the owner owes the driver.
type DireccionPago string

const (
	PorCobrar DireccionPago = "POR_COBRAR"
	PorPagar  DireccionPago = "POR_PAGAR"
)

// EstadoFlete: "PENDIENTE" | "COMPLETADO" | "ANULADO"
type EstadoFlete string

const (
	FletePendiente  EstadoFlete = "PENDIENTE"
	FleteCompletado EstadoFlete = "COMPLETADO"
	FleteAnulado    EstadoFlete = "ANULADO"
)

func (e EstadoFlete) Valido() bool {
	return e == FletePendiente || e == FleteCompletado || e == FleteAnulado
}

// Flete is a trip job. TipoModelo, TipoCalculo and MontoBase are a copy of the
// truck policy taken on every create/update, so later policy changes on the
// truck never alter a stored settlement.
type Flete struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CamionID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ChoferID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha       time.Time `gorm:"not null;index"`
	Origen      *string
	Destino     *string
	Descripcion *string

	// Policy snapshot
	TipoModelo  ModeloPago      `gorm:"type:varchar(20);not null"`
	TipoCalculo TipoCalculo     `gorm:"type:varchar(20);not null"`
	MontoBase   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Ingreso     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Peajes      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Viaticos    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtrosGastos decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	UsarMontoPersonalizado bool             `gorm:"not null;default:false"`
	MontoPersonalizado     *decimal.Decimal `gorm:"type:decimal(12,2)"`

	// Derived: recomputed on every write, never taken from input
	MontoCalculado decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoFinal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoAcordado  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DireccionPago  DireccionPago   `gorm:"type:varchar(20);not null"`
	Ganancia       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Estado        EstadoFlete `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Camion *Camion `gorm:"foreignKey:CamionID"`
	Chofer *Chofer `gorm:"foreignKey:ChoferID"`
}
