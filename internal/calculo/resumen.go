package calculo

import (
	"errors"
	"time"
)

var ErrMesInvalido = errors.New("mes inválido, formato esperado YYYY-MM")

// Ventana is a half-open UTC interval [Desde, Hasta).
type Ventana struct {
	Mes   string
	Desde time.Time
	Hasta time.Time
}

// Contiene reports whether t falls in the window.
func (v Ventana) Contiene(t time.Time) bool {
	t = t.UTC()
	return !t.Before(v.Desde) && t.Before(v.Hasta)
}

// VentanaMensual parses "YYYY-MM" into the month window.
func VentanaMensual(mes string) (Ventana, error) {
	t, err := time.ParseInLocation("2006-01", mes, time.UTC)
	if err != nil {
		return Ventana{}, ErrMesInvalido
	}
	desde := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Ventana{
		Mes:   desde.Format("2006-01"),
		Desde: desde,
		Hasta: desde.AddDate(0, 1, 0),
	}, nil
}

// MesActual returns the current UTC month as "YYYY-MM".
func MesActual(now time.Time) string { return now.UTC().Format("2006-01") }
