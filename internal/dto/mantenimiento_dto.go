package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Planes ──────────────────────────────────────────────────────────────────

type CrearPlanRequest struct {
	CamionID         string  `json:"camionId"         validate:"required,uuid"`
	Tipo             string  `json:"tipo"             validate:"required,min=2,max=80"`
	CadaKm           int     `json:"cadaKm"           validate:"required,gt=0"`
	UltimoServicioKm int     `json:"ultimoServicioKm" validate:"min=0"`
	Activo           *bool   `json:"activo"`
	Descripcion      *string `json:"descripcion"`
}

type ActualizarPlanRequest struct {
	CamionID         Opcional[string] `json:"camionId"`
	Tipo             Opcional[string] `json:"tipo"`
	CadaKm           Opcional[int]    `json:"cadaKm"`
	UltimoServicioKm Opcional[int]    `json:"ultimoServicioKm"`
	Activo           Opcional[bool]   `json:"activo"`
	Descripcion      Opcional[string] `json:"descripcion"`
}

type PlanFilter struct {
	CamionID string `form:"camionId" validate:"omitempty,uuid"`
	Activo   *bool  `form:"activo"`
}

type PlanResponse struct {
	ID               string  `json:"id"`
	CamionID         string  `json:"camionId"`
	Tipo             string  `json:"tipo"`
	CadaKm           int     `json:"cadaKm"`
	UltimoServicioKm int     `json:"ultimoServicioKm"`
	ProximoKm        int     `json:"proximoKm"`
	Activo           bool    `json:"activo"`
	Descripcion      *string `json:"descripcion"`
}

// ─── Servicios realizados ────────────────────────────────────────────────────

type RegistrarServicioRequest struct {
	CamionID    string          `json:"camionId"    validate:"required,uuid"`
	Fecha       time.Time       `json:"fecha"       validate:"required"`
	Tipo        string          `json:"tipo"        validate:"required,min=2,max=80"`
	Kilometraje int             `json:"kilometraje" validate:"min=0"`
	Costo       decimal.Decimal `json:"costo"       validate:"min=0"`
	Descripcion *string         `json:"descripcion"`
	Taller      *string         `json:"taller"      validate:"omitempty,max=120"`
}

type ServicioFilter struct {
	CamionID string `form:"camionId" validate:"omitempty,uuid"`
	Tipo     string `form:"tipo"`
	Desde    string `form:"desde"    validate:"omitempty,datetime=2006-01-02"`
	Hasta    string `form:"hasta"    validate:"omitempty,datetime=2006-01-02"`
}

type ServicioResponse struct {
	ID          string  `json:"id"`
	CamionID    string  `json:"camionId"`
	Fecha       string  `json:"fecha"`
	Tipo        string  `json:"tipo"`
	Kilometraje int     `json:"kilometraje"`
	Costo       string  `json:"costo"`
	Descripcion *string `json:"descripcion"`
	Taller      *string `json:"taller"`
	// PlanActualizado is the plan advanced by this service, if any.
	PlanActualizado *PlanResponse `json:"planActualizado"`
}
