package service

import (
	"context"
	"strings"

	"flota/internal/dto"
	"flota/internal/model"
	"flota/internal/repository"

	"github.com/google/uuid"
)

type ChoferService interface {
	Crear(ctx context.Context, tenantID uuid.UUID, req dto.CrearChoferRequest) (*dto.ChoferResponse, error)
	Obtener(ctx context.Context, tenantID, id uuid.UUID) (*dto.ChoferResponse, error)
	Listar(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]dto.ChoferResponse, error)
	Actualizar(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarChoferRequest) (*dto.ChoferResponse, error)
	Eliminar(ctx context.Context, tenantID, id uuid.UUID) error
}

type choferService struct {
	store repository.Store
}

func NewChoferService(store repository.Store) ChoferService {
	return &choferService{store: store}
}

func (s *choferService) Crear(ctx context.Context, tenantID uuid.UUID, req dto.CrearChoferRequest) (*dto.ChoferResponse, error) {
	nombre, err := textoRequerido(req.Nombre, "nombre")
	if err != nil {
		return nil, err
	}
	documento, err := textoRequerido(req.Documento, "documento")
	if err != nil {
		return nil, err
	}
	c := &model.Chofer{
		TenantID:  tenantID,
		Nombre:    nombre,
		Documento: strings.ToUpper(documento),
		Telefono:  req.Telefono,
		Licencia:  req.Licencia,
		Activo:    true,
	}
	if err := s.store.Choferes().Create(ctx, c); err != nil {
		return nil, err
	}
	return choferToResponse(c), nil
}

func (s *choferService) Obtener(ctx context.Context, tenantID, id uuid.UUID) (*dto.ChoferResponse, error) {
	c, err := s.store.Choferes().FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return choferToResponse(c), nil
}

func (s *choferService) Listar(ctx context.Context, tenantID uuid.UUID, soloActivos bool) ([]dto.ChoferResponse, error) {
	choferes, err := s.store.Choferes().List(ctx, tenantID, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChoferResponse, 0, len(choferes))
	for i := range choferes {
		out = append(out, *choferToResponse(&choferes[i]))
	}
	return out, nil
}

func (s *choferService) Actualizar(ctx context.Context, tenantID, id uuid.UUID, req dto.ActualizarChoferRequest) (*dto.ChoferResponse, error) {
	c, err := s.store.Choferes().FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := requerido(req.Nombre, &c.Nombre, "nombre"); err != nil {
		return nil, err
	}
	if c.Nombre, err = textoRequerido(c.Nombre, "nombre"); err != nil {
		return nil, err
	}
	if err := requerido(req.Documento, &c.Documento, "documento"); err != nil {
		return nil, err
	}
	documento, err := textoRequerido(c.Documento, "documento")
	if err != nil {
		return nil, err
	}
	c.Documento = strings.ToUpper(documento)
	dto.AplicarPtr(req.Telefono, &c.Telefono)
	dto.AplicarPtr(req.Licencia, &c.Licencia)
	if err := requerido(req.Activo, &c.Activo, "activo"); err != nil {
		return nil, err
	}

	if err := s.store.Choferes().Update(ctx, c); err != nil {
		return nil, err
	}
	return choferToResponse(c), nil
}

func (s *choferService) Eliminar(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.Choferes().Delete(ctx, tenantID, id)
}

func choferToResponse(c *model.Chofer) *dto.ChoferResponse {
	return &dto.ChoferResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Documento: c.Documento,
		Telefono:  c.Telefono,
		Licencia:  c.Licencia,
		Activo:    c.Activo,
	}
}
