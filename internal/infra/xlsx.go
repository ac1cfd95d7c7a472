package infra

import (
	"fmt"

	"flota/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	hojaResumen = "Resumen"
	hojaAlertas = "Alertas"
)

// RenderResumenXLSX renders r as a workbook with a "Resumen" and an "Alertas" sheet.
func RenderResumenXLSX(r *dto.ResumenMensualResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaResumen); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(hojaAlertas); err != nil {
		return nil, fmt.Errorf("xlsx: new sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	moneda, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	filas := [][2]string{
		{"Ingresos", r.Summary.Ingresos},
		{"Ganancia de fletes", r.Summary.GananciaFletes},
		{"Gasto de combustible", r.Summary.GastoCombustible},
		{"Gasto de mantenimiento", r.Summary.GastoMantenimiento},
		{"Utilidad neta", r.Summary.UtilidadNeta},
	}
	cells := map[string]any{"A1": "Mes", "B1": r.Month}
	for i, fila := range filas {
		row := i + 2
		v, err := decimal.NewFromString(fila[1])
		if err != nil {
			return nil, fmt.Errorf("xlsx: monto %q: %w", fila[0], err)
		}
		valor, _ := v.Float64()
		cells[fmt.Sprintf("A%d", row)] = fila[0]
		cells[fmt.Sprintf("B%d", row)] = valor
	}
	for cell, v := range cells {
		if err := f.SetCellValue(hojaResumen, cell, v); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(hojaResumen, "A1", "A6", bold); err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	if err := f.SetCellStyle(hojaResumen, "B2", "B6", moneda); err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	if err := f.SetColWidth(hojaResumen, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("xlsx: col width: %w", err)
	}
	if err := f.SetColWidth(hojaResumen, "B", "B", 16); err != nil {
		return nil, fmt.Errorf("xlsx: col width: %w", err)
	}

	header := []any{"Placa", "Tipo", "Próximo km", "Km actual", "Restante km", "Camión", "Plan"}
	if err := f.SetSheetRow(hojaAlertas, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(hojaAlertas, "A1", "G1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	for i, a := range r.MaintenanceAlerts {
		row := []any{a.Placa, a.Tipo, a.ProximoKm, a.KilometrajeActual, a.RestanteKm, a.TruckID, a.ID}
		if err := f.SetSheetRow(hojaAlertas, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
