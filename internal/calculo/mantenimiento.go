package calculo

import (
	"errors"
	"sort"

	"flota/internal/model"
)

// UmbralAlertaKm is the due-soon window of the maintenance alert.
const UmbralAlertaKm = 500

var (
	ErrCadaKmInvalido   = errors.New("cada_km debe ser mayor a cero")
	ErrUltimoServicioKm = errors.New("ultimo_servicio_km no puede ser negativo")
)

// ProximoServicio returns the odometer reading at which the next service is due.
func ProximoServicio(ultimoServicioKm, cadaKm int) (int, error) {
	if cadaKm <= 0 {
		return 0, ErrCadaKmInvalido
	}
	if ultimoServicioKm < 0 {
		return 0, ErrUltimoServicioKm
	}
	return ultimoServicioKm + cadaKm, nil
}

// RegistrarServicio moves plan p to a service performed at km. A lower reading
// than the previous service is accepted as-is.
func RegistrarServicio(p *model.PlanMantenimiento, km int) {
	p.UltimoServicioKm = km
	p.ProximoKm = km + p.CadaKm
}

// Alerta is an active plan that comes due within the alert window.
type Alerta struct {
	PlanID            string
	CamionID          string
	Placa             string
	Tipo              string
	ProximoKm         int
	KilometrajeActual int
	RestanteKm        int
}

// FiltrarAlertas keeps active plans with 0 ≤ ProximoKm − KilometrajeActual ≤ umbral,
// sorted by ProximoKm. Overdue plans (negative remainder) are not included.
// Plans must carry their Camion.
func FiltrarAlertas(planes []model.PlanMantenimiento, umbral int) []Alerta {
	alertas := make([]Alerta, 0)
	for _, p := range planes {
		if !p.Activo || p.Camion == nil {
			continue
		}
		restante := p.ProximoKm - p.Camion.KilometrajeActual
		if restante < 0 || restante > umbral {
			continue
		}
		alertas = append(alertas, Alerta{
			PlanID:            p.ID.String(),
			CamionID:          p.CamionID.String(),
			Placa:             p.Camion.Placa,
			Tipo:              p.Tipo,
			ProximoKm:         p.ProximoKm,
			KilometrajeActual: p.Camion.KilometrajeActual,
			RestanteKm:        restante,
		})
	}
	sort.SliceStable(alertas, func(i, j int) bool { return alertas[i].ProximoKm < alertas[j].ProximoKm })
	return alertas
}
