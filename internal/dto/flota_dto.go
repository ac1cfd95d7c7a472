package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Camiones ────────────────────────────────────────────────────────────────

type CrearCamionRequest struct {
	Placa             string          `json:"placa"             validate:"required,min=3,max=20"`
	Marca             *string         `json:"marca"             validate:"omitempty,max=60"`
	Modelo            *string         `json:"modelo"            validate:"omitempty,max=60"`
	Anio              *int            `json:"anio"              validate:"omitempty,min=1950,max=2100"`
	ModeloPago        string          `json:"modeloPago"        validate:"required,oneof=DUENO_PAGA CHOFER_PAGA"`
	TipoCalculo       string          `json:"tipoCalculo"       validate:"required,oneof=VIAJE IDA_VUELTA MENSUAL"`
	MontoBase         decimal.Decimal `json:"montoBase"         validate:"min=0"`
	KilometrajeActual int             `json:"kilometrajeActual" validate:"min=0"`
}

// ActualizarCamionRequest: omitted fields keep their value, null clears nullable ones.
type ActualizarCamionRequest struct {
	Placa             Opcional[string]          `json:"placa"`
	Marca             Opcional[string]          `json:"marca"`
	Modelo            Opcional[string]          `json:"modelo"`
	Anio              Opcional[int]             `json:"anio"`
	ModeloPago        Opcional[string]          `json:"modeloPago"`
	TipoCalculo       Opcional[string]          `json:"tipoCalculo"`
	MontoBase         Opcional[decimal.Decimal] `json:"montoBase"`
	KilometrajeActual Opcional[int]             `json:"kilometrajeActual"`
	Activo            Opcional[bool]            `json:"activo"`
}

type CamionResponse struct {
	ID                string  `json:"id"`
	Placa             string  `json:"placa"`
	Marca             *string `json:"marca"`
	Modelo            *string `json:"modelo"`
	Anio              *int    `json:"anio"`
	ModeloPago        string  `json:"modeloPago"`
	TipoCalculo       string  `json:"tipoCalculo"`
	MontoBase         string  `json:"montoBase"`
	KilometrajeActual int     `json:"kilometrajeActual"`
	Activo            bool    `json:"activo"`
}

// ─── Choferes ────────────────────────────────────────────────────────────────

type CrearChoferRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=120"`
	Documento string  `json:"documento" validate:"required,min=5,max=30"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=30"`
	Licencia  *string `json:"licencia"  validate:"omitempty,max=30"`
}

type ActualizarChoferRequest struct {
	Nombre    Opcional[string] `json:"nombre"`
	Documento Opcional[string] `json:"documento"`
	Telefono  Opcional[string] `json:"telefono"`
	Licencia  Opcional[string] `json:"licencia"`
	Activo    Opcional[bool]   `json:"activo"`
}

type ChoferResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Documento string  `json:"documento"`
	Telefono  *string `json:"telefono"`
	Licencia  *string `json:"licencia"`
	Activo    bool    `json:"activo"`
}
