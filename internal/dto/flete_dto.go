package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filter ──────────────────────────────────────────────────────────────────

// FleteFilter is bound from the query string of GET /v1/fletes.
type FleteFilter struct {
	CamionID string `form:"camionId" validate:"omitempty,uuid"`
	ChoferID string `form:"choferId" validate:"omitempty,uuid"`
	Estado   string `form:"estado"   validate:"omitempty,oneof=PENDIENTE COMPLETADO ANULADO"`
	Desde    string `form:"desde"    validate:"omitempty,datetime=2006-01-02"` // inclusive
	Hasta    string `form:"hasta"    validate:"omitempty,datetime=2006-01-02"` // exclusive
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearFleteRequest struct {
	CamionID               string           `json:"camionId"               validate:"required,uuid"`
	ChoferID               string           `json:"choferId"               validate:"required,uuid"`
	Fecha                  time.Time        `json:"fecha"                  validate:"required"`
	Origen                 *string          `json:"origen"                 validate:"omitempty,max=200"`
	Destino                *string          `json:"destino"                validate:"omitempty,max=200"`
	Descripcion            *string          `json:"descripcion"`
	Ingreso                decimal.Decimal  `json:"ingreso"                validate:"min=0"`
	Peajes                 decimal.Decimal  `json:"peajes"                 validate:"min=0"`
	Viaticos               decimal.Decimal  `json:"viaticos"               validate:"min=0"`
	OtrosGastos            decimal.Decimal  `json:"otrosGastos"            validate:"min=0"`
	UsarMontoPersonalizado bool             `json:"usarMontoPersonalizado"`
	MontoPersonalizado     *decimal.Decimal `json:"montoPersonalizado"`
	Estado                 string           `json:"estado"                 validate:"omitempty,oneof=PENDIENTE COMPLETADO ANULADO"`
	Observaciones          *string          `json:"observaciones"`
}

// ActualizarFleteRequest: every omitted field keeps its persisted value before
// the settlement is recomputed.
type ActualizarFleteRequest struct {
	CamionID               Opcional[string]          `json:"camionId"`
	ChoferID               Opcional[string]          `json:"choferId"`
	Fecha                  Opcional[time.Time]       `json:"fecha"`
	Origen                 Opcional[string]          `json:"origen"`
	Destino                Opcional[string]          `json:"destino"`
	Descripcion            Opcional[string]          `json:"descripcion"`
	Ingreso                Opcional[decimal.Decimal] `json:"ingreso"`
	Peajes                 Opcional[decimal.Decimal] `json:"peajes"`
	Viaticos               Opcional[decimal.Decimal] `json:"viaticos"`
	OtrosGastos            Opcional[decimal.Decimal] `json:"otrosGastos"`
	UsarMontoPersonalizado Opcional[bool]            `json:"usarMontoPersonalizado"`
	MontoPersonalizado     Opcional[decimal.Decimal] `json:"montoPersonalizado"`
	Estado                 Opcional[string]          `json:"estado"`
	Observaciones          Opcional[string]          `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// LiquidacionResponse is the settlement part of a freight; amounts are 2-decimal strings.
type LiquidacionResponse struct {
	MontoCalculado string `json:"montoCalculado"`
	MontoFinal     string `json:"montoFinal"`
	MontoAcordado  string `json:"montoAcordado"`
	DireccionPago  string `json:"direccionPago"`
	Ganancia       string `json:"ganancia"`
	Ingreso        string `json:"ingreso"`
	Peajes         string `json:"peajes"`
	Viaticos       string `json:"viaticos"`
	OtrosGastos    string `json:"otrosGastos"`
}

type FleteResponse struct {
	ID                     string  `json:"id"`
	CamionID               string  `json:"camionId"`
	ChoferID               string  `json:"choferId"`
	Fecha                  string  `json:"fecha"`
	Origen                 *string `json:"origen"`
	Destino                *string `json:"destino"`
	Descripcion            *string `json:"descripcion"`
	TipoModelo             string  `json:"tipoModelo"`
	TipoCalculo            string  `json:"tipoCalculo"`
	MontoBase              string  `json:"montoBase"`
	UsarMontoPersonalizado bool    `json:"usarMontoPersonalizado"`
	MontoPersonalizado     *string `json:"montoPersonalizado"`
	LiquidacionResponse
	Estado        string  `json:"estado"`
	Observaciones *string `json:"observaciones"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}
