package service

import (
	"context"

	"flota/internal/apierror"
	"flota/internal/calculo"
	"flota/internal/dto"
	"flota/internal/metrics"
	"flota/internal/model"
	"flota/internal/money"
	"flota/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// FleteService settles freights against the payment policy of their truck.
type FleteService interface {
	Crear(ctx context.Context, tenantID uuid.UUID, req dto.CrearFleteRequest) (*dto.FleteResponse, error)
	Obtener(ctx context.Context, tenantID, id uuid.UUID) (*dto.FleteResponse, error)
	Listar(ctx context.Context, tenantID uuid.UUID, filter dto.FleteFilter) ([]dto.FleteResponse, error)
	Actualizar(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarFleteRequest) (*dto.FleteResponse, error)
	Eliminar(ctx context.Context, tenantID, id uuid.UUID) error
}

type fleteService struct {
	store repository.Store
	cache ResumenCache
}

func NewFleteService(store repository.Store, cache ResumenCache) FleteService {
	return &fleteService{store: store, cache: cacheOrNoop(cache)}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
//   1. Parse references and validate the trip input
//   2. Resolve truck and driver inside the tenant
//   3. Settle with the truck policy (pure, no I/O)
//   4. Single-statement write inside a transaction

func (s *fleteService) Crear(ctx context.Context, tenantID uuid.UUID, req dto.CrearFleteRequest) (*dto.FleteResponse, error) {
	camionID, err := parseID(req.CamionID, "camionId")
	if err != nil {
		return nil, err
	}
	choferID, err := parseID(req.ChoferID, "choferId")
	if err != nil {
		return nil, err
	}
	estado := model.FletePendiente
	if req.Estado != "" {
		estado = model.EstadoFlete(req.Estado)
	}

	f := &model.Flete{
		TenantID:               tenantID,
		CamionID:               camionID,
		ChoferID:               choferID,
		Fecha:                  req.Fecha.UTC(),
		Origen:                 req.Origen,
		Destino:                req.Destino,
		Descripcion:            req.Descripcion,
		Ingreso:                req.Ingreso,
		Peajes:                 req.Peajes,
		Viaticos:               req.Viaticos,
		OtrosGastos:            req.OtrosGastos,
		UsarMontoPersonalizado: req.UsarMontoPersonalizado,
		MontoPersonalizado:     req.MontoPersonalizado,
		Estado:                 estado,
		Observaciones:          req.Observaciones,
	}
	if err := validarFlete(f); err != nil {
		return nil, err
	}

	if err := s.liquidar(ctx, f); err != nil {
		return nil, err
	}

	if err := s.store.WithTx(ctx, func(tx repository.Store) error {
		return tx.Fletes().Create(ctx, f)
	}); err != nil {
		return nil, err
	}

	s.despuesDeEscribir(ctx, f)
	return fleteToResponse(f), nil
}

func (s *fleteService) Obtener(ctx context.Context, tenantID, id uuid.UUID) (*dto.FleteResponse, error) {
	f, err := s.store.Fletes().FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return fleteToResponse(f), nil
}

func (s *fleteService) Listar(ctx context.Context, tenantID uuid.UUID, filter dto.FleteFilter) ([]dto.FleteResponse, error) {
	var (
		f   repository.FleteFilter
		err error
	)
	if f.CamionID, err = parseIDOpcional(filter.CamionID, "camionId"); err != nil {
		return nil, err
	}
	if f.ChoferID, err = parseIDOpcional(filter.ChoferID, "choferId"); err != nil {
		return nil, err
	}
	if filter.Estado != "" {
		f.Estado = model.EstadoFlete(filter.Estado)
		if !f.Estado.Valido() {
			return nil, apierror.Validacion("estado inválido")
		}
	}
	if f.Desde, err = parseDia(filter.Desde, "desde"); err != nil {
		return nil, err
	}
	if f.Hasta, err = parseDia(filter.Hasta, "hasta"); err != nil {
		return nil, err
	}

	fletes, err := s.store.Fletes().List(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FleteResponse, 0, len(fletes))
	for i := range fletes {
		out = append(out, *fleteToResponse(&fletes[i]))
	}
	return out, nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// Omitted inputs keep their persisted value. The policy is always re-read from
// the (possibly reassigned) truck and the whole settlement is recomputed.

func (s *fleteService) Actualizar(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarFleteRequest) (*dto.FleteResponse, error) {
	f, err := s.store.Fletes().FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := req.CamionID.Valor(); ok {
		if f.CamionID, err = parseID(v, "camionId"); err != nil {
			return nil, err
		}
	} else if req.CamionID.EsNulo() {
		return nil, apierror.Validacion("camionId no puede ser nulo")
	}
	if v, ok := req.ChoferID.Valor(); ok {
		if f.ChoferID, err = parseID(v, "choferId"); err != nil {
			return nil, err
		}
	} else if req.ChoferID.EsNulo() {
		return nil, apierror.Validacion("choferId no puede ser nulo")
	}
	if err := requerido(req.Fecha, &f.Fecha, "fecha"); err != nil {
		return nil, err
	}
	f.Fecha = f.Fecha.UTC()
	dto.AplicarPtr(req.Origen, &f.Origen)
	dto.AplicarPtr(req.Destino, &f.Destino)
	dto.AplicarPtr(req.Descripcion, &f.Descripcion)
	dto.AplicarPtr(req.Observaciones, &f.Observaciones)

	for _, m := range []struct {
		o     dto.Opcional[decimal.Decimal]
		dst   *decimal.Decimal
		campo string
	}{
		{req.Ingreso, &f.Ingreso, "ingreso"},
		{req.Peajes, &f.Peajes, "peajes"},
		{req.Viaticos, &f.Viaticos, "viaticos"},
		{req.OtrosGastos, &f.OtrosGastos, "otrosGastos"},
	} {
		if err := requerido(m.o, m.dst, m.campo); err != nil {
			return nil, err
		}
	}
	if err := requerido(req.UsarMontoPersonalizado, &f.UsarMontoPersonalizado, "usarMontoPersonalizado"); err != nil {
		return nil, err
	}
	dto.AplicarPtr(req.MontoPersonalizado, &f.MontoPersonalizado)

	estado := string(f.Estado)
	if err := requerido(req.Estado, &estado, "estado"); err != nil {
		return nil, err
	}
	f.Estado = model.EstadoFlete(estado)

	if err := validarFlete(f); err != nil {
		return nil, err
	}
	if err := s.liquidar(ctx, f); err != nil {
		return nil, err
	}

	if err := s.store.WithTx(ctx, func(tx repository.Store) error {
		return tx.Fletes().Update(ctx, f)
	}); err != nil {
		return nil, err
	}

	s.despuesDeEscribir(ctx, f)
	return fleteToResponse(f), nil
}

func (s *fleteService) Eliminar(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.store.Fletes().Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.cache.Invalidar(ctx, tenantID)
	return nil
}

// liquidar resolves truck and driver of f in its tenant and writes the policy
// snapshot and settlement onto f.
func (s *fleteService) liquidar(ctx context.Context, f *model.Flete) error {
	camion, err := s.store.Camiones().FindByID(ctx, f.TenantID, f.CamionID)
	if err != nil {
		return err
	}
	if _, err := s.store.Choferes().FindByID(ctx, f.TenantID, f.ChoferID); err != nil {
		return err
	}

	politica := calculo.PoliticaDe(camion)
	liq, err := calculo.LiquidarFlete(politica, calculo.EntradaFlete{
		Ingreso:                f.Ingreso,
		Peajes:                 f.Peajes,
		Viaticos:               f.Viaticos,
		OtrosGastos:            f.OtrosGastos,
		UsarMontoPersonalizado: f.UsarMontoPersonalizado,
		MontoPersonalizado:     f.MontoPersonalizado,
	})
	if err != nil {
		return apierror.ValidacionDe(err)
	}
	liq.Aplicar(f, politica)
	if f.MontoPersonalizado != nil {
		mp := money.Monto(*f.MontoPersonalizado)
		f.MontoPersonalizado = &mp
	}
	return nil
}

func (s *fleteService) despuesDeEscribir(ctx context.Context, f *model.Flete) {
	metrics.IncFleteLiquidado(string(f.DireccionPago))
	s.cache.Invalidar(ctx, f.TenantID)
	log.Debug().
		Str("flete_id", f.ID.String()).
		Str("direccion", string(f.DireccionPago)).
		Str("ganancia", money.FormatMonto(f.Ganancia)).
		Msg("flete liquidado")
}

func validarFlete(f *model.Flete) error {
	if !f.Estado.Valido() {
		return apierror.Validacion("estado inválido")
	}
	if f.Fecha.IsZero() {
		return apierror.Validacion("fecha es requerida")
	}
	for campo, v := range map[string]decimal.Decimal{
		"ingreso":     f.Ingreso,
		"peajes":      f.Peajes,
		"viaticos":    f.Viaticos,
		"otrosGastos": f.OtrosGastos,
	} {
		if err := noNegativo(v, campo); err != nil {
			return err
		}
	}
	if f.MontoPersonalizado != nil {
		if err := noNegativo(*f.MontoPersonalizado, "montoPersonalizado"); err != nil {
			return err
		}
	}
	return nil
}

func fleteToResponse(f *model.Flete) *dto.FleteResponse {
	return &dto.FleteResponse{
		ID:                     f.ID.String(),
		CamionID:               f.CamionID.String(),
		ChoferID:               f.ChoferID.String(),
		Fecha:                  formatFecha(f.Fecha),
		Origen:                 f.Origen,
		Destino:                f.Destino,
		Descripcion:            f.Descripcion,
		TipoModelo:             string(f.TipoModelo),
		TipoCalculo:            string(f.TipoCalculo),
		MontoBase:              money.FormatMonto(f.MontoBase),
		UsarMontoPersonalizado: f.UsarMontoPersonalizado,
		MontoPersonalizado:     formatMontoPtr(f.MontoPersonalizado),
		LiquidacionResponse: dto.LiquidacionResponse{
			MontoCalculado: money.FormatMonto(f.MontoCalculado),
			MontoFinal:     money.FormatMonto(f.MontoFinal),
			MontoAcordado:  money.FormatMonto(f.MontoAcordado),
			DireccionPago:  string(f.DireccionPago),
			Ganancia:       money.FormatMonto(f.Ganancia),
			Ingreso:        money.FormatMonto(f.Ingreso),
			Peajes:         money.FormatMonto(f.Peajes),
			Viaticos:       money.FormatMonto(f.Viaticos),
			OtrosGastos:    money.FormatMonto(f.OtrosGastos),
		},
		Estado:        string(f.Estado),
		Observaciones: f.Observaciones,
		CreatedAt:     formatFecha(f.CreatedAt),
		UpdatedAt:     formatFecha(f.UpdatedAt),
	}
}
