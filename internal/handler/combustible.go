package handler

import (
	"net/http"

	"flota/internal/dto"
	"flota/internal/service"

	"github.com/gin-gonic/gin"
)

type CombustibleHandler struct{ svc service.CombustibleService }

func NewCombustibleHandler(svc service.CombustibleService) *CombustibleHandler {
	return &CombustibleHandler{svc: svc}
}

func (h *CombustibleHandler) Registrar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.RegistrarCombustibleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), tenant, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CombustibleHandler) Listar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var filter dto.CombustibleFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), tenant, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombustibleHandler) ObtenerPorID(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), tenant, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombustibleHandler) Actualizar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCombustibleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), tenant, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CombustibleHandler) Eliminar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), tenant, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
