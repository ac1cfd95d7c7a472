package service

import (
	"context"
	"strings"

	"flota/internal/apierror"
	"flota/internal/dto"
	"flota/internal/model"
	"flota/internal/money"
	"flota/internal/repository"

	"github.com/google/uuid"
)

// CamionService administers trucks and their payment policy.
type CamionService interface {
	Crear(ctx context.Context, tenantID uuid.UUID, req dto.CrearCamionRequest) (*dto.CamionResponse, error)
	Obtener(ctx context.Context, tenantID, id uuid.UUID) (*dto.CamionResponse, error)
	Listar(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]dto.CamionResponse, error)
	Actualizar(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarCamionRequest) (*dto.CamionResponse, error)
	Eliminar(ctx context.Context, tenantID, id uuid.UUID) error
}

type camionService struct {
	store repository.Store
	cache ResumenCache
}

func NewCamionService(store repository.Store, cache ResumenCache) CamionService {
	return &camionService{store: store, cache: cacheOrNoop(cache)}
}

func (s *camionService) Crear(ctx context.Context, tenantID uuid.UUID, req dto.CrearCamionRequest) (*dto.CamionResponse, error) {
	c := &model.Camion{
		TenantID:          tenantID,
		Marca:             req.Marca,
		Modelo:            req.Modelo,
		Anio:              req.Anio,
		ModeloPago:        model.ModeloPago(req.ModeloPago),
		TipoCalculo:       model.TipoCalculo(req.TipoCalculo),
		MontoBase:         money.Monto(req.MontoBase),
		KilometrajeActual: req.KilometrajeActual,
		Activo:            true,
	}
	placa, err := textoRequerido(req.Placa, "placa")
	if err != nil {
		return nil, err
	}
	c.Placa = strings.ToUpper(placa)
	if err := validarCamion(c); err != nil {
		return nil, err
	}

	if err := s.store.Camiones().Create(ctx, c); err != nil {
		return nil, err
	}
	return camionToResponse(c), nil
}

func (s *camionService) Obtener(ctx context.Context, tenantID, id uuid.UUID) (*dto.CamionResponse, error) {
	c, err := s.store.Camiones().FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return camionToResponse(c), nil
}

func (s *camionService) Listar(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]dto.CamionResponse, error) {
	camiones, err := s.store.Camiones().List(ctx, tenantID, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CamionResponse, 0, len(camiones))
	for i := range camiones {
		out = append(out, *camionToResponse(&camiones[i]))
	}
	return out, nil
}

// Actualizar changes the truck. A policy change never touches freights
// already settled: they carry their own snapshot. The row is read under lock
// so a concurrent odometer advance is never written back over.
func (s *camionService) Actualizar(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarCamionRequest) (*dto.CamionResponse, error) {
	var c *model.Camion
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		if c, err = tx.Camiones().FindByIDForUpdate(ctx, tenantID, id); err != nil {
			return err
		}
		if err := aplicarCambiosCamion(c, req); err != nil {
			return err
		}
		return tx.Camiones().Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	// Alerts read placa and kilometraje from the truck.
	s.cache.Invalidar(ctx, tenantID)
	return camionToResponse(c), nil
}

func aplicarCambiosCamion(c *model.Camion, req dto.ActualizarCamionRequest) error {
	if err := requerido(req.Placa, &c.Placa, "placa"); err != nil {
		return err
	}
	if req.Placa.Presente() {
		placa, err := textoRequerido(c.Placa, "placa")
		if err != nil {
			return err
		}
		c.Placa = strings.ToUpper(placa)
	}
	dto.AplicarPtr(req.Marca, &c.Marca)
	dto.AplicarPtr(req.Modelo, &c.Modelo)
	dto.AplicarPtr(req.Anio, &c.Anio)

	modeloPago := string(c.ModeloPago)
	if err := requerido(req.ModeloPago, &modeloPago, "modeloPago"); err != nil {
		return err
	}
	c.ModeloPago = model.ModeloPago(modeloPago)
	tipoCalculo := string(c.TipoCalculo)
	if err := requerido(req.TipoCalculo, &tipoCalculo, "tipoCalculo"); err != nil {
		return err
	}
	c.TipoCalculo = model.TipoCalculo(tipoCalculo)
	if err := requerido(req.MontoBase, &c.MontoBase, "montoBase"); err != nil {
		return err
	}
	c.MontoBase = money.Monto(c.MontoBase)
	if err := requerido(req.KilometrajeActual, &c.KilometrajeActual, "kilometrajeActual"); err != nil {
		return err
	}
	if err := requerido(req.Activo, &c.Activo, "activo"); err != nil {
		return err
	}
	return validarCamion(c)
}

func (s *camionService) Eliminar(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.store.Camiones().Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.cache.Invalidar(ctx, tenantID)
	return nil
}

func validarCamion(c *model.Camion) error {
	if !c.ModeloPago.Valido() {
		return apierror.Validacion("modeloPago inválido")
	}
	if !c.TipoCalculo.Valido() {
		return apierror.Validacion("tipoCalculo inválido")
	}
	if err := noNegativo(c.MontoBase, "montoBase"); err != nil {
		return err
	}
	if c.KilometrajeActual < 0 {
		return apierror.Validacion("kilometrajeActual no puede ser negativo")
	}
	return nil
}

func camionToResponse(c *model.Camion) *dto.CamionResponse {
	return &dto.CamionResponse{
		ID:                c.ID.String(),
		Placa:             c.Placa,
		Marca:             c.Marca,
		Modelo:            c.Modelo,
		Anio:              c.Anio,
		ModeloPago:        string(c.ModeloPago),
		TipoCalculo:       string(c.TipoCalculo),
		MontoBase:         money.FormatMonto(c.MontoBase),
		KilometrajeActual: c.KilometrajeActual,
		Activo:            c.Activo,
	}
}
