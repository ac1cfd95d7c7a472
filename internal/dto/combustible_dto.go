package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CombustibleFilter struct {
	CamionID string `form:"camionId" validate:"omitempty,uuid"`
	Desde    string `form:"desde"    validate:"omitempty,datetime=2006-01-02"`
	Hasta    string `form:"hasta"    validate:"omitempty,datetime=2006-01-02"`
}

type RegistrarCombustibleRequest struct {
	CamionID       string          `json:"camionId"       validate:"required,uuid"`
	ChoferID       string          `json:"choferId"       validate:"required,uuid"`
	Fecha          time.Time       `json:"fecha"          validate:"required"`
	Kilometraje    int             `json:"kilometraje"    validate:"min=0"`
	Galones        decimal.Decimal `json:"galones"        validate:"required,gt=0"`
	PrecioPorGalon decimal.Decimal `json:"precioPorGalon" validate:"required,gt=0"`
	Estacion       *string         `json:"estacion"       validate:"omitempty,max=120"`
}

type ActualizarCombustibleRequest struct {
	CamionID       Opcional[string]          `json:"camionId"`
	ChoferID       Opcional[string]          `json:"choferId"`
	Fecha          Opcional[time.Time]       `json:"fecha"`
	Kilometraje    Opcional[int]             `json:"kilometraje"`
	Galones        Opcional[decimal.Decimal] `json:"galones"`
	PrecioPorGalon Opcional[decimal.Decimal] `json:"precioPorGalon"`
	Estacion       Opcional[string]          `json:"estacion"`
}

// CombustibleResponse: galones/precioPorGalon as 3-decimal strings, total as 2-decimal.
type CombustibleResponse struct {
	ID             string  `json:"id"`
	CamionID       string  `json:"camionId"`
	ChoferID       string  `json:"choferId"`
	Fecha          string  `json:"fecha"`
	Kilometraje    int     `json:"kilometraje"`
	Galones        string  `json:"galones"`
	PrecioPorGalon string  `json:"precioPorGalon"`
	Total          string  `json:"total"`
	Estacion       *string `json:"estacion"`
}
