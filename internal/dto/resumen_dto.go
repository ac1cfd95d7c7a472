package dto

// ResumenTotales: every amount is a 2-decimal string, "0.00" when nothing matched.
type ResumenTotales struct {
	Ingresos           string `json:"ingresos"`
	GananciaFletes     string `json:"gananciaFletes"`
	GastoCombustible   string `json:"gastoCombustible"`
	GastoMantenimiento string `json:"gastoMantenimiento"`
	UtilidadNeta       string `json:"utilidadNeta"`
}

type AlertaMantenimiento struct {
	ID                string `json:"id"`
	TruckID           string `json:"truckId"`
	Placa             string `json:"placa"`
	Tipo              string `json:"tipo"`
	ProximoKm         int    `json:"proximoKm"`
	KilometrajeActual int    `json:"kilometrajeActual"`
	RestanteKm        int    `json:"restanteKm"`
}

type ResumenMensualResponse struct {
	Month             string                `json:"month"`
	Summary           ResumenTotales        `json:"summary"`
	MaintenanceAlerts []AlertaMantenimiento `json:"maintenanceAlerts"`
}

type EnviarReporteRequest struct {
	Destinatario string `json:"destinatario" validate:"required,email"`
}
