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
)

// CombustibleService records fuel fill-ups. The truck odometer advances with
// every fill-up in the same transaction.
type CombustibleService interface {
	Registrar(ctx context.Context, tenantID uuid.UUID, req dto.RegistrarCombustibleRequest) (*dto.CombustibleResponse, error)
	Obtener(ctx context.Context, tenantID, id uuid.UUID) (*dto.CombustibleResponse, error)
	Listar(ctx context.Context, tenantID uuid.UUID, filter dto.CombustibleFilter) ([]dto.CombustibleResponse, error)
	Actualizar(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarCombustibleRequest) (*dto.CombustibleResponse, error)
	Eliminar(ctx context.Context, tenantID, id uuid.UUID) error
}

type combustibleService struct {
	store repository.Store
	cache ResumenCache
}

func NewCombustibleService(store repository.Store, cache ResumenCache) CombustibleService {
	return &combustibleService{store: store, cache: cacheOrNoop(cache)}
}

func (s *combustibleService) Registrar(ctx context.Context, tenantID uuid.UUID, req dto.RegistrarCombustibleRequest) (*dto.CombustibleResponse, error) {
	camionID, err := parseID(req.CamionID, "camionId")
	if err != nil {
		return nil, err
	}
	choferID, err := parseID(req.ChoferID, "choferId")
	if err != nil {
		return nil, err
	}
	c := &model.CargaCombustible{
		TenantID:       tenantID,
		CamionID:       camionID,
		ChoferID:       choferID,
		Fecha:          req.Fecha.UTC(),
		Kilometraje:    req.Kilometraje,
		Galones:        req.Galones,
		PrecioPorGalon: req.PrecioPorGalon,
		Estacion:       req.Estacion,
	}
	if err := s.preparar(ctx, c); err != nil {
		return nil, err
	}

	if err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Combustible().Create(ctx, c); err != nil {
			return err
		}
		return tx.Camiones().AvanzarKilometraje(ctx, tenantID, c.CamionID, c.Kilometraje)
	}); err != nil {
		return nil, err
	}

	metrics.IncCargaRegistrada()
	s.cache.Invalidar(ctx, tenantID)
	return cargaToResponse(c), nil
}

func (s *combustibleService) Obtener(ctx context.Context, tenantID, id uuid.UUID) (*dto.CombustibleResponse, error) {
	c, err := s.store.Combustible().FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return cargaToResponse(c), nil
}

func (s *combustibleService) Listar(ctx context.Context, tenantID uuid.UUID, filter dto.CombustibleFilter) ([]dto.CombustibleResponse, error) {
	var (
		f   repository.CombustibleFilter
		err error
	)
	if f.CamionID, err = parseIDOpcional(filter.CamionID, "camionId"); err != nil {
		return nil, err
	}
	if f.Desde, err = parseDia(filter.Desde, "desde"); err != nil {
		return nil, err
	}
	if f.Hasta, err = parseDia(filter.Hasta, "hasta"); err != nil {
		return nil, err
	}
	cargas, err := s.store.Combustible().List(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CombustibleResponse, 0, len(cargas))
	for i := range cargas {
		out = append(out, *cargaToResponse(&cargas[i]))
	}
	return out, nil
}

// Actualizar recomputes the total from the stored pair with the sent fields applied.
func (s *combustibleService) Actualizar(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarCombustibleRequest) (*dto.CombustibleResponse, error) {
	c, err := s.store.Combustible().FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := req.CamionID.Valor(); ok {
		if c.CamionID, err = parseID(v, "camionId"); err != nil {
			return nil, err
		}
	} else if req.CamionID.EsNulo() {
		return nil, apierror.Validacion("camionId no puede ser nulo")
	}
	if v, ok := req.ChoferID.Valor(); ok {
		if c.ChoferID, err = parseID(v, "choferId"); err != nil {
			return nil, err
		}
	} else if req.ChoferID.EsNulo() {
		return nil, apierror.Validacion("choferId no puede ser nulo")
	}
	if err := requerido(req.Fecha, &c.Fecha, "fecha"); err != nil {
		return nil, err
	}
	c.Fecha = c.Fecha.UTC()
	if err := requerido(req.Kilometraje, &c.Kilometraje, "kilometraje"); err != nil {
		return nil, err
	}
	if err := requerido(req.Galones, &c.Galones, "galones"); err != nil {
		return nil, err
	}
	if err := requerido(req.PrecioPorGalon, &c.PrecioPorGalon, "precioPorGalon"); err != nil {
		return nil, err
	}
	dto.AplicarPtr(req.Estacion, &c.Estacion)

	if err := s.preparar(ctx, c); err != nil {
		return nil, err
	}

	if err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Combustible().Update(ctx, c); err != nil {
			return err
		}
		return tx.Camiones().AvanzarKilometraje(ctx, tenantID, c.CamionID, c.Kilometraje)
	}); err != nil {
		return nil, err
	}

	s.cache.Invalidar(ctx, tenantID)
	return cargaToResponse(c), nil
}

func (s *combustibleService) Eliminar(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.store.Combustible().Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.cache.Invalidar(ctx, tenantID)
	return nil
}

// preparar validates c, checks its references and fixes the stored amounts.
func (s *combustibleService) preparar(ctx context.Context, c *model.CargaCombustible) error {
	if c.Fecha.IsZero() {
		return apierror.Validacion("fecha es requerida")
	}
	if c.Kilometraje < 0 {
		return apierror.Validacion("kilometraje no puede ser negativo")
	}
	carga, err := calculo.TotalCombustible(c.Galones, c.PrecioPorGalon)
	if err != nil {
		return apierror.ValidacionDe(err)
	}
	if _, err := s.store.Camiones().FindByID(ctx, c.TenantID, c.CamionID); err != nil {
		return err
	}
	if _, err := s.store.Choferes().FindByID(ctx, c.TenantID, c.ChoferID); err != nil {
		return err
	}
	c.Galones = carga.Galones
	c.PrecioPorGalon = carga.PrecioPorGalon
	c.Total = carga.Total
	return nil
}

func cargaToResponse(c *model.CargaCombustible) *dto.CombustibleResponse {
	return &dto.CombustibleResponse{
		ID:             c.ID.String(),
		CamionID:       c.CamionID.String(),
		ChoferID:       c.ChoferID.String(),
		Fecha:          formatFecha(c.Fecha),
		Kilometraje:    c.Kilometraje,
		Galones:        money.FormatCantidad(c.Galones),
		PrecioPorGalon: money.FormatCantidad(c.PrecioPorGalon),
		Total:          money.FormatMonto(c.Total),
		Estacion:       c.Estacion,
	}
}
