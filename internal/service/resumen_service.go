package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flota/internal/apierror"
	"flota/internal/calculo"
	"flota/internal/dto"
	"flota/internal/infra"
	"flota/internal/metrics"
	"flota/internal/money"
	"flota/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EnviadorReporte delivers a rendered report by mail. *infra.Mailer implements it.
type EnviadorReporte interface {
	EnviarReporte(ctx context.Context, destinatario, asunto, cuerpo string, adjunto []byte, nombreArchivo string) error
}

// Reporte is a rendered export ready to be served.
type Reporte struct {
	Mes           string
	NombreArchivo string
	ContentType   string
	Contenido     []byte
}

// ResumenService aggregates the monthly profitability view of a tenant.
type ResumenService interface {
	// ResumenMensual accepts "YYYY-MM"; an empty mes means the current UTC month.
	ResumenMensual(ctx context.Context, tenantID uuid.UUID, mes string) (*dto.ResumenMensualResponse, error)
	ExportarPDF(ctx context.Context, tenantID uuid.UUID, mes string) (*Reporte, error)
	ExportarXLSX(ctx context.Context, tenantID uuid.UUID, mes string) (*Reporte, error)
	EnviarPorEmail(ctx context.Context, tenantID uuid.UUID, mes, destinatario string) error
}

type resumenService struct {
	store    repository.Store
	cache    ResumenCache
	enviador EnviadorReporte
	umbralKm int
	now      func() time.Time
}

// NewResumenService builds the aggregator. umbralKm ≤ 0 falls back to
// calculo.UmbralAlertaKm; a nil enviador disables EnviarPorEmail.
func NewResumenService(store repository.Store, cache ResumenCache, enviador EnviadorReporte, umbralKm int) ResumenService {
	if umbralKm <= 0 {
		umbralKm = calculo.UmbralAlertaKm
	}
	return &resumenService{
		store:    store,
		cache:    cacheOrNoop(cache),
		enviador: enviador,
		umbralKm: umbralKm,
		now:      time.Now,
	}
}

func (s *resumenService) ResumenMensual(ctx context.Context, tenantID uuid.UUID, mes string) (*dto.ResumenMensualResponse, error) {
	if mes == "" {
		mes = calculo.MesActual(s.now())
	}
	ventana, err := calculo.VentanaMensual(mes)
	if err != nil {
		return nil, apierror.ValidacionDe(err)
	}

	r, version, ok := s.cache.Obtener(ctx, tenantID, ventana.Mes)
	if ok {
		metrics.IncResumenCache("hit")
		return r, nil
	}
	metrics.IncResumenCache("miss")

	r, err = s.calcular(ctx, tenantID, ventana)
	if err != nil {
		return nil, err
	}
	s.cache.Guardar(ctx, tenantID, ventana.Mes, version, r)
	return r, nil
}

func (s *resumenService) calcular(ctx context.Context, tenantID uuid.UUID, v calculo.Ventana) (*dto.ResumenMensualResponse, error) {
	fletes, err := s.store.Fletes().SumCompletados(ctx, tenantID, v.Desde, v.Hasta)
	if err != nil {
		return nil, err
	}
	combustible, err := s.store.Combustible().SumTotal(ctx, tenantID, v.Desde, v.Hasta)
	if err != nil {
		return nil, err
	}
	mantenimiento, err := s.store.Mantenimientos().SumCosto(ctx, tenantID, v.Desde, v.Hasta)
	if err != nil {
		return nil, err
	}
	planes, err := s.store.Planes().ListActivosConCamion(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	utilidad := fletes.Ganancia.Sub(combustible).Sub(mantenimiento)

	alertas := calculo.FiltrarAlertas(planes, s.umbralKm)
	out := make([]dto.AlertaMantenimiento, 0, len(alertas))
	for _, a := range alertas {
		out = append(out, dto.AlertaMantenimiento{
			ID:                a.PlanID,
			TruckID:           a.CamionID,
			Placa:             a.Placa,
			Tipo:              a.Tipo,
			ProximoKm:         a.ProximoKm,
			KilometrajeActual: a.KilometrajeActual,
			RestanteKm:        a.RestanteKm,
		})
	}

	return &dto.ResumenMensualResponse{
		Month: v.Mes,
		Summary: dto.ResumenTotales{
			Ingresos:           money.FormatMonto(fletes.Ingreso),
			GananciaFletes:     money.FormatMonto(fletes.Ganancia),
			GastoCombustible:   money.FormatMonto(combustible),
			GastoMantenimiento: money.FormatMonto(mantenimiento),
			UtilidadNeta:       money.FormatMonto(utilidad),
		},
		MaintenanceAlerts: out,
	}, nil
}

// ── Exportación ───────────────────────────────────────────────────────────────

func (s *resumenService) ExportarPDF(ctx context.Context, tenantID uuid.UUID, mes string) (*Reporte, error) {
	return s.exportar(ctx, tenantID, mes, "pdf", "application/pdf", infra.RenderResumenPDF)
}

func (s *resumenService) ExportarXLSX(ctx context.Context, tenantID uuid.UUID, mes string) (*Reporte, error) {
	return s.exportar(ctx, tenantID, mes, "xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", infra.RenderResumenXLSX)
}

func (s *resumenService) exportar(
	ctx context.Context,
	tenantID uuid.UUID,
	mes, formato, contentType string,
	render func(*dto.ResumenMensualResponse) ([]byte, error),
) (*Reporte, error) {
	start := time.Now()
	r, err := s.ResumenMensual(ctx, tenantID, mes)
	if err != nil {
		return nil, err
	}
	contenido, err := render(r)
	if err != nil {
		metrics.ObserveReporteExport(formato, metrics.ResultError, time.Since(start))
		return nil, apierror.Interno(fmt.Errorf("render %s: %w", formato, err))
	}
	metrics.ObserveReporteExport(formato, metrics.ResultSuccess, time.Since(start))
	return &Reporte{
		Mes:           r.Month,
		NombreArchivo: fmt.Sprintf("resumen_%s.%s", r.Month, formato),
		ContentType:   contentType,
		Contenido:     contenido,
	}, nil
}

// EnviarPorEmail mails the PDF export synchronously.
func (s *resumenService) EnviarPorEmail(ctx context.Context, tenantID uuid.UUID, mes, destinatario string) error {
	if s.enviador == nil {
		return apierror.Interno(errors.New("envío de reportes no configurado"))
	}
	rep, err := s.ExportarPDF(ctx, tenantID, mes)
	if err != nil {
		return err
	}
	asunto := "Resumen mensual de flota " + rep.Mes
	cuerpo := "Adjuntamos el resumen financiero mensual de la flota."
	if err := s.enviador.EnviarReporte(ctx, destinatario, asunto, cuerpo, rep.Contenido, rep.NombreArchivo); err != nil {
		log.Error().Err(err).Str("destinatario", destinatario).Msg("envío de resumen mensual falló")
		return apierror.Interno(err)
	}
	log.Info().Str("destinatario", destinatario).Str("archivo", rep.NombreArchivo).Msg("resumen mensual enviado")
	return nil
}
