package infra

// pdf.go: monthly summary report rendered with go-pdf/fpdf.
//   - Title with the month
//   - Totals table (ingresos, ganancia de fletes, combustible, mantenimiento, utilidad neta)
//   - Maintenance alerts table, or a "sin alertas" line

import (
	"bytes"
	"fmt"

	"flota/internal/dto"

	"github.com/go-pdf/fpdf"
)

// RenderResumenPDF renders r as an A4 PDF and returns its bytes.
func RenderResumenPDF(r *dto.ResumenMensualResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	// Core fonts are cp1252; accents must be translated.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Resumen mensual de flota"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Período: "+r.Month), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Totals ────────────────────────────────────────────────────────────────
	labelW := contentW * 0.65
	valueW := contentW * 0.35
	filas := []struct{ label, valor string }{
		{"Ingresos (fletes completados)", r.Summary.Ingresos},
		{"Ganancia de fletes", r.Summary.GananciaFletes},
		{"Gasto de combustible", r.Summary.GastoCombustible},
		{"Gasto de mantenimiento", r.Summary.GastoMantenimiento},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, f := range filas {
		pdf.CellFormat(labelW, 7, tr(f.label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 7, "$"+f.valor, "B", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 8, tr("Utilidad neta"), "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 8, "$"+r.Summary.UtilidadNeta, "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// ── Alerts ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr("Alertas de mantenimiento"), "", 1, "L", false, 0, "")

	if len(r.MaintenanceAlerts) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(contentW, 6, tr("Sin servicios próximos."), "", 1, "L", false, 0, "")
	} else {
		cols := []float64{contentW * 0.2, contentW * 0.32, contentW * 0.16, contentW * 0.16, contentW * 0.16}
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range []string{"Placa", "Tipo", "Próximo km", "Km actual", "Restante"} {
			pdf.CellFormat(cols[i], 6, tr(h), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		for _, a := range r.MaintenanceAlerts {
			tipo := a.Tipo
			if len(tipo) > 30 {
				tipo = tipo[:29] + "..."
			}
			pdf.CellFormat(cols[0], 6, tr(a.Placa), "", 0, "L", false, 0, "")
			pdf.CellFormat(cols[1], 6, tr(tipo), "", 0, "L", false, 0, "")
			pdf.CellFormat(cols[2], 6, fmt.Sprintf("%d", a.ProximoKm), "", 0, "R", false, 0, "")
			pdf.CellFormat(cols[3], 6, fmt.Sprintf("%d", a.KilometrajeActual), "", 0, "R", false, 0, "")
			pdf.CellFormat(cols[4], 6, fmt.Sprintf("%d", a.RestanteKm), "", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
