package handler

import (
	"fmt"
	"net/http"

	"flota/internal/dto"
	"flota/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ResumenService }

func NewReportesHandler(svc service.ResumenService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Mensual returns the summary of :mes ("YYYY-MM" or "actual").
func (h *ReportesHandler) Mensual(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenMensual(c.Request.Context(), tenant, mesParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) PDF(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	rep, err := h.svc.ExportarPDF(c.Request.Context(), tenant, mesParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	servirReporte(c, rep)
}

func (h *ReportesHandler) XLSX(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	rep, err := h.svc.ExportarXLSX(c.Request.Context(), tenant, mesParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	servirReporte(c, rep)
}

// Enviar mails the PDF of :mes; 202 once the SMTP server accepted it.
func (h *ReportesHandler) Enviar(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarPorEmail(c.Request.Context(), tenant, mesParam(c), req.Destinatario); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"enviado": true, "destinatario": req.Destinatario})
}

func mesParam(c *gin.Context) string {
	mes := c.Param("mes")
	if mes == "actual" {
		return ""
	}
	return mes
}

func servirReporte(c *gin.Context, rep *service.Reporte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rep.NombreArchivo))
	c.Data(http.StatusOK, rep.ContentType, rep.Contenido)
}
