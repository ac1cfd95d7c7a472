package router

import (
	"context"
	"time"

	"flota/internal/config"
	"flota/internal/handler"
	"flota/internal/infra"
	"flota/internal/metrics"
	"flota/internal/middleware"
	"flota/internal/repository"
	"flota/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil: the monthly summary is then computed on every request.
// Background housekeeping stops when ctx is done.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Init()

	r := gin.New()

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	go limiter.RunPurge(5*time.Minute, ctx.Done())

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(metrics.Middleware())
	r.Use(middleware.ErrorHandler())

	// ── Infrastructure ───────────────────────────────────────────────────────
	var cache service.ResumenCache
	if rdb != nil {
		cache = infra.NewResumenCache(rdb, time.Duration(cfg.ResumenCacheTTLSeconds)*time.Second)
	}
	var enviador service.EnviadorReporte
	if cfg.MailerHabilitado() {
		enviador = infra.NewMailer(cfg)
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	store := repository.NewStore(db)

	// ── Services ─────────────────────────────────────────────────────────────
	camionSvc := service.NewCamionService(store, cache)
	choferSvc := service.NewChoferService(store)
	fleteSvc := service.NewFleteService(store, cache)
	combustibleSvc := service.NewCombustibleService(store, cache)
	mantenimientoSvc := service.NewMantenimientoService(store, cache)
	resumenSvc := service.NewResumenService(store, cache, enviador, cfg.AlertaUmbralKm)

	// ── Handlers ─────────────────────────────────────────────────────────────
	camionesH := handler.NewCamionesHandler(camionSvc)
	choferesH := handler.NewChoferesHandler(choferSvc)
	fletesH := handler.NewFletesHandler(fleteSvc)
	combustibleH := handler.NewCombustibleHandler(combustibleSvc)
	mantenimientoH := handler.NewMantenimientoHandler(mantenimientoSvc)
	reportesH := handler.NewReportesHandler(resumenSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	todos := middleware.RequireRole(middleware.RolAdministrador, middleware.RolSupervisor, middleware.RolOperador)
	operacion := middleware.RequireRole(middleware.RolAdministrador, middleware.RolSupervisor)
	admin := middleware.RequireRole(middleware.RolAdministrador)

	// Protected routes; the limiter runs after auth so it keys by tenant.
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), limiter.Middleware())
	{
		cam := v1.Group("/camiones")
		{
			cam.GET("", todos, camionesH.Listar)
			cam.GET("/:id", todos, camionesH.ObtenerPorID)
			cam.POST("", admin, camionesH.Crear)
			cam.PATCH("/:id", admin, camionesH.Actualizar)
			cam.DELETE("/:id", admin, camionesH.Eliminar)
		}

		cho := v1.Group("/choferes")
		{
			cho.GET("", todos, choferesH.Listar)
			cho.GET("/:id", todos, choferesH.ObtenerPorID)
			cho.POST("", admin, choferesH.Crear)
			cho.PATCH("/:id", admin, choferesH.Actualizar)
			cho.DELETE("/:id", admin, choferesH.Eliminar)
		}

		fle := v1.Group("/fletes")
		{
			fle.GET("", todos, fletesH.Listar)
			fle.GET("/:id", todos, fletesH.ObtenerPorID)
			fle.POST("", operacion, fletesH.Crear)
			fle.PATCH("/:id", operacion, fletesH.Actualizar)
			fle.DELETE("/:id", operacion, fletesH.Eliminar)
		}

		com := v1.Group("/combustible")
		{
			com.GET("", todos, combustibleH.Listar)
			com.GET("/:id", todos, combustibleH.ObtenerPorID)
			com.POST("", operacion, combustibleH.Registrar)
			com.PATCH("/:id", operacion, combustibleH.Actualizar)
			com.DELETE("/:id", operacion, combustibleH.Eliminar)
		}

		man := v1.Group("/mantenimiento")
		{
			man.GET("/planes", todos, mantenimientoH.ListarPlanes)
			man.GET("/planes/:id", todos, mantenimientoH.ObtenerPlan)
			man.POST("/planes", operacion, mantenimientoH.CrearPlan)
			man.PATCH("/planes/:id", operacion, mantenimientoH.ActualizarPlan)
			man.DELETE("/planes/:id", operacion, mantenimientoH.EliminarPlan)

			man.GET("/servicios", todos, mantenimientoH.ListarServicios)
			man.POST("/servicios", operacion, mantenimientoH.RegistrarServicio)
		}

		rep := v1.Group("/reportes/mensual")
		{
			rep.GET("/:mes", todos, reportesH.Mensual)
			rep.GET("/:mes/pdf", todos, reportesH.PDF)
			rep.GET("/:mes/xlsx", todos, reportesH.XLSX)
			rep.POST("/:mes/enviar", operacion, reportesH.Enviar)
		}
	}

	return r
}
