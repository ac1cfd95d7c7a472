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
)

// MantenimientoService manages odometer-based plans and the log of services
// performed.
type MantenimientoService interface {
	CrearPlan(ctx context.Context, tenantID uuid.UUID, req dto.CrearPlanRequest) (*dto.PlanResponse, error)
	ObtenerPlan(ctx context.Context, tenantID, id uuid.UUID) (*dto.PlanResponse, error)
	ListarPlanes(ctx context.Context, tenantID uuid.UUID, filter dto.PlanFilter) ([]dto.PlanResponse, error)
	ActualizarPlan(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarPlanRequest) (*dto.PlanResponse, error)
	EliminarPlan(ctx context.Context, tenantID, id uuid.UUID) error

	RegistrarServicio(ctx context.Context, tenantID uuid.UUID, req dto.RegistrarServicioRequest) (*dto.ServicioResponse, error)
	ListarServicios(ctx context.Context, tenantID uuid.UUID, filter dto.ServicioFilter) ([]dto.ServicioResponse, error)
}

type mantenimientoService struct {
	store repository.Store
	cache ResumenCache
}

func NewMantenimientoService(store repository.Store, cache ResumenCache) MantenimientoService {
	return &mantenimientoService{store: store, cache: cacheOrNoop(cache)}
}

// ── Planes ────────────────────────────────────────────────────────────────────

func (s *mantenimientoService) CrearPlan(ctx context.Context, tenantID uuid.UUID, req dto.CrearPlanRequest) (*dto.PlanResponse, error) {
	camionID, err := parseID(req.CamionID, "camionId")
	if err != nil {
		return nil, err
	}
	tipo, err := textoRequerido(req.Tipo, "tipo")
	if err != nil {
		return nil, err
	}
	p := &model.PlanMantenimiento{
		TenantID:         tenantID,
		CamionID:         camionID,
		Tipo:             tipo,
		CadaKm:           req.CadaKm,
		UltimoServicioKm: req.UltimoServicioKm,
		Activo:           true,
		Descripcion:      req.Descripcion,
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	if err := programar(ctx, s.store, p); err != nil {
		return nil, err
	}

	if err := s.store.Planes().Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidar(ctx, tenantID)
	return planToResponse(p), nil
}

func (s *mantenimientoService) ObtenerPlan(ctx context.Context, tenantID, id uuid.UUID) (*dto.PlanResponse, error) {
	p, err := s.store.Planes().FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return planToResponse(p), nil
}

func (s *mantenimientoService) ListarPlanes(ctx context.Context, tenantID uuid.UUID, filter dto.PlanFilter) ([]dto.PlanResponse, error) {
	camionID, err := parseIDOpcional(filter.CamionID, "camionId")
	if err != nil {
		return nil, err
	}
	planes, err := s.store.Planes().List(ctx, tenantID, repository.PlanFilter{CamionID: camionID, Activo: filter.Activo})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(planes))
	for i := range planes {
		out = append(out, *planToResponse(&planes[i]))
	}
	return out, nil
}

// ActualizarPlan reads the plan under lock, so a service recorded meanwhile is
// never undone by writing back the stale row.
func (s *mantenimientoService) ActualizarPlan(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarPlanRequest) (*dto.PlanResponse, error) {
	var p *model.PlanMantenimiento
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		if p, err = tx.Planes().FindByIDForUpdate(ctx, tenantID, id); err != nil {
			return err
		}
		if err := aplicarCambiosPlan(p, req); err != nil {
			return err
		}
		if err := programar(ctx, tx, p); err != nil {
			return err
		}
		return tx.Planes().Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidar(ctx, tenantID)
	return planToResponse(p), nil
}

func aplicarCambiosPlan(p *model.PlanMantenimiento, req dto.ActualizarPlanRequest) error {
	var err error
	if v, ok := req.CamionID.Valor(); ok {
		if p.CamionID, err = parseID(v, "camionId"); err != nil {
			return err
		}
	} else if req.CamionID.EsNulo() {
		return apierror.Validacion("camionId no puede ser nulo")
	}
	if err := requerido(req.Tipo, &p.Tipo, "tipo"); err != nil {
		return err
	}
	if p.Tipo, err = textoRequerido(p.Tipo, "tipo"); err != nil {
		return err
	}
	if err := requerido(req.CadaKm, &p.CadaKm, "cadaKm"); err != nil {
		return err
	}
	if err := requerido(req.UltimoServicioKm, &p.UltimoServicioKm, "ultimoServicioKm"); err != nil {
		return err
	}
	if err := requerido(req.Activo, &p.Activo, "activo"); err != nil {
		return err
	}
	dto.AplicarPtr(req.Descripcion, &p.Descripcion)
	return nil
}

func (s *mantenimientoService) EliminarPlan(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.store.Planes().Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.cache.Invalidar(ctx, tenantID)
	return nil
}

// programar checks the truck of p exists in the tenant and recomputes ProximoKm.
func programar(ctx context.Context, store repository.Store, p *model.PlanMantenimiento) error {
	proximo, err := calculo.ProximoServicio(p.UltimoServicioKm, p.CadaKm)
	if err != nil {
		return apierror.ValidacionDe(err)
	}
	if _, err := store.Camiones().FindByID(ctx, p.TenantID, p.CamionID); err != nil {
		return err
	}
	p.ProximoKm = proximo
	return nil
}

// ── Servicios realizados ──────────────────────────────────────────────────────
// One transaction:
//   1. Insert the service record
//   2. Lock the active plan of (camion, tipo), if any
//   3. Move the plan to the recorded kilometraje
//   4. Advance the truck odometer
// Any failure rolls back all of it.

func (s *mantenimientoService) RegistrarServicio(ctx context.Context, tenantID uuid.UUID, req dto.RegistrarServicioRequest) (*dto.ServicioResponse, error) {
	camionID, err := parseID(req.CamionID, "camionId")
	if err != nil {
		return nil, err
	}
	tipo, err := textoRequerido(req.Tipo, "tipo")
	if err != nil {
		return nil, err
	}
	if req.Fecha.IsZero() {
		return nil, apierror.Validacion("fecha es requerida")
	}
	if req.Kilometraje < 0 {
		return nil, apierror.Validacion("kilometraje no puede ser negativo")
	}
	if err := noNegativo(req.Costo, "costo"); err != nil {
		return nil, err
	}

	m := &model.Mantenimiento{
		TenantID:    tenantID,
		CamionID:    camionID,
		Fecha:       req.Fecha.UTC(),
		Tipo:        tipo,
		Kilometraje: req.Kilometraje,
		Costo:       money.Monto(req.Costo),
		Descripcion: req.Descripcion,
		Taller:      req.Taller,
	}

	var plan *model.PlanMantenimiento
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Camiones().FindByID(ctx, tenantID, camionID); err != nil {
			return err
		}
		if err := tx.Mantenimientos().Create(ctx, m); err != nil {
			return err
		}

		p, err := tx.Planes().FindActivoForUpdate(ctx, tenantID, camionID, tipo)
		if err != nil {
			return err
		}
		if p != nil {
			calculo.RegistrarServicio(p, m.Kilometraje)
			if err := tx.Planes().Update(ctx, p); err != nil {
				return err
			}
			plan = p
		}

		return tx.Camiones().AvanzarKilometraje(ctx, tenantID, camionID, m.Kilometraje)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncServicioRegistrado(plan != nil)
	s.cache.Invalidar(ctx, tenantID)

	resp := servicioToResponse(m)
	if plan != nil {
		resp.PlanActualizado = planToResponse(plan)
		log.Info().
			Str("plan_id", plan.ID.String()).
			Int("proximo_km", plan.ProximoKm).
			Msg("plan de mantenimiento reprogramado")
	}
	return resp, nil
}

func (s *mantenimientoService) ListarServicios(ctx context.Context, tenantID uuid.UUID, filter dto.ServicioFilter) ([]dto.ServicioResponse, error) {
	var (
		f   repository.MantenimientoFilter
		err error
	)
	if f.CamionID, err = parseIDOpcional(filter.CamionID, "camionId"); err != nil {
		return nil, err
	}
	f.Tipo = filter.Tipo
	if f.Desde, err = parseDia(filter.Desde, "desde"); err != nil {
		return nil, err
	}
	if f.Hasta, err = parseDia(filter.Hasta, "hasta"); err != nil {
		return nil, err
	}
	registros, err := s.store.Mantenimientos().List(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServicioResponse, 0, len(registros))
	for i := range registros {
		out = append(out, *servicioToResponse(&registros[i]))
	}
	return out, nil
}

func planToResponse(p *model.PlanMantenimiento) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:               p.ID.String(),
		CamionID:         p.CamionID.String(),
		Tipo:             p.Tipo,
		CadaKm:           p.CadaKm,
		UltimoServicioKm: p.UltimoServicioKm,
		ProximoKm:        p.ProximoKm,
		Activo:           p.Activo,
		Descripcion:      p.Descripcion,
	}
}

func servicioToResponse(m *model.Mantenimiento) *dto.ServicioResponse {
	return &dto.ServicioResponse{
		ID:          m.ID.String(),
		CamionID:    m.CamionID.String(),
		Fecha:       formatFecha(m.Fecha),
		Tipo:        m.Tipo,
		Kilometraje: m.Kilometraje,
		Costo:       money.FormatMonto(m.Costo),
		Descripcion: m.Descripcion,
		Taller:      m.Taller,
	}
}
