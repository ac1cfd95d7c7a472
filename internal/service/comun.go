package service

import (
	"context"
	"strings"
	"time"

	"flota/internal/apierror"
	"flota/internal/dto"
	"flota/internal/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResumenCache stores computed monthly summaries per tenant. Implementations
// are best-effort: a failing cache must behave like an empty one.
type ResumenCache interface {
	// Obtener also returns the cache version the lookup was made under; pass
	// it back to Guardar so a result computed across an invalidation is
	// never served. A negative version disables Guardar.
	Obtener(ctx context.Context, tenantID uuid.UUID, mes string) (*dto.ResumenMensualResponse, int64, bool)
	Guardar(ctx context.Context, tenantID uuid.UUID, mes string, version int64, r *dto.ResumenMensualResponse)
	// Invalidar drops every cached month of the tenant.
	Invalidar(ctx context.Context, tenantID uuid.UUID)
}

type sinCache struct{}

func (sinCache) Obtener(context.Context, uuid.UUID, string) (*dto.ResumenMensualResponse, int64, bool) {
	return nil, -1, false
}
func (sinCache) Guardar(context.Context, uuid.UUID, string, int64, *dto.ResumenMensualResponse) {}
func (sinCache) Invalidar(context.Context, uuid.UUID)                                           {}

func cacheOrNoop(c ResumenCache) ResumenCache {
	if c == nil {
		return sinCache{}
	}
	return c
}

const formatoDia = "2006-01-02"

func parseID(s, campo string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apierror.Validacion(campo + " inválido")
	}
	return id, nil
}

func parseIDOpcional(s, campo string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := parseID(s, campo)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDia parses a YYYY-MM-DD filter bound as UTC midnight.
func parseDia(s, campo string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(formatoDia, s, time.UTC)
	if err != nil {
		return nil, apierror.Validacion(campo + " debe tener formato YYYY-MM-DD")
	}
	return &t, nil
}

func formatFecha(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func formatMontoPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money.FormatMonto(*d)
	return &s
}

func noNegativo(d decimal.Decimal, campo string) error {
	if d.IsNegative() {
		return apierror.Validacion(campo + " no puede ser negativo")
	}
	return nil
}

// requerido rejects an explicit null on a non-nullable field.
func requerido[T any](o dto.Opcional[T], dst *T, campo string) error {
	if !o.Aplicar(dst) {
		return apierror.Validacion(campo + " no puede ser nulo")
	}
	return nil
}

func textoRequerido(s, campo string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apierror.Validacion(campo + " es requerido")
	}
	return s, nil
}
