// Package metrics registers the Prometheus collectors of the service. Every
// helper is a no-op until Init has run, so packages can record unconditionally.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "flota_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	fletesLiquidados     *prometheus.CounterVec
	cargasRegistradas    prometheus.Counter
	serviciosRegistrados prometheus.Counter
	planesAvanzados      prometheus.Counter

	resumenCache     *prometheus.CounterVec
	reporteExportado *prometheus.CounterVec
	reporteLatency   *prometheus.HistogramVec
)

// Init registers the collectors on the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		fletesLiquidados = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fletes_liquidados_total",
				Help: "Freights settled on create/update by payment direction",
			},
			[]string{"direccion"},
		)
		cargasRegistradas = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "cargas_combustible_total",
				Help: "Fuel fill-ups recorded",
			},
		)
		serviciosRegistrados = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "servicios_mantenimiento_total",
				Help: "Maintenance services recorded",
			},
		)
		planesAvanzados = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "planes_avanzados_total",
				Help: "Maintenance plans moved forward by a recorded service",
			},
		)

		resumenCache = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "resumen_cache_total",
				Help: "Monthly summary cache lookups by outcome",
			},
			[]string{"outcome"},
		)
		reporteExportado = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reporte_export_total",
				Help: "Monthly report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reporteLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "reporte_export_latency_seconds",
				Help:    "Monthly report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			fletesLiquidados,
			cargasRegistradas,
			serviciosRegistrados,
			planesAvanzados,
			resumenCache,
			reporteExportado,
			reporteLatency,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if httpRequests != nil {
			httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		}
		if httpLatency != nil {
			httpLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		}
	}
}

// IncFleteLiquidado counts a settled freight.
func IncFleteLiquidado(direccion string) {
	if direccion == "" {
		direccion = "unknown"
	}
	if fletesLiquidados != nil {
		fletesLiquidados.WithLabelValues(direccion).Inc()
	}
}

func IncCargaRegistrada() {
	if cargasRegistradas != nil {
		cargasRegistradas.Inc()
	}
}

// IncServicioRegistrado counts a recorded service and, when a plan moved, the plan.
func IncServicioRegistrado(planAvanzado bool) {
	if serviciosRegistrados != nil {
		serviciosRegistrados.Inc()
	}
	if planAvanzado && planesAvanzados != nil {
		planesAvanzados.Inc()
	}
}

// IncResumenCache records a cache "hit", "miss" or "error".
func IncResumenCache(outcome string) {
	if resumenCache != nil {
		resumenCache.WithLabelValues(outcome).Inc()
	}
}

// ObserveReporteExport records export latency and result.
func ObserveReporteExport(format, result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if reporteExportado != nil {
		reporteExportado.WithLabelValues(format, result).Inc()
	}
	if reporteLatency != nil {
		reporteLatency.WithLabelValues(format).Observe(duration.Seconds())
	}
}
