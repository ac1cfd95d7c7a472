package handler

import (
	"net/http"

	"flota/internal/dto"
	"flota/internal/service"

	"github.com/gin-gonic/gin"
)

// MantenimientoHandler serves both maintenance plans and the service log.
type MantenimientoHandler struct{ svc service.MantenimientoService }

func NewMantenimientoHandler(svc service.MantenimientoService) *MantenimientoHandler {
	return &MantenimientoHandler{svc: svc}
}

func (h *MantenimientoHandler) CrearPlan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.CrearPlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPlan(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MantenimientoHandler) ListarPlanes(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var filter dto.PlanFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarPlanes(c.Request.Context(), tenant, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MantenimientoHandler) ObtenerPlan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPlan(c.Request.Context(), tenant, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MantenimientoHandler) ActualizarPlan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPlan(c.Request.Context(), tenant, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MantenimientoHandler) EliminarPlan(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarPlan(c.Request.Context(), tenant, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegistrarServicio records a service and advances the matching active plan.
func (h *MantenimientoHandler) RegistrarServicio(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.RegistrarServicioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarServicio(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MantenimientoHandler) ListarServicios(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var filter dto.ServicioFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarServicios(c.Request.Context(), tenant, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
