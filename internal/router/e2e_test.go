//go:build integration

package router

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flota/internal/config"
	"flota/internal/infra"
	"flota/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	cfg    *config.Config
}

func (e *testEnv) token(t *testing.T, tenant uuid.UUID) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.JWTClaims{
		UserID:   uuid.NewString(),
		TenantID: tenant.String(),
		Rol:      middleware.RolAdministrador,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(e.cfg.JWTSecret))
	require.NoError(t, err)
	return s
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("flota_test"),
		tcPostgres.WithUsername("flota"),
		tcPostgres.WithPassword("flota"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                   8000,
		Env:                    "test",
		JWTSecret:              "test-secret-key",
		RateLimit:              1000,
		DatabaseURL:            pgURL,
		RedisURL:               rdURL,
		ResumenCacheTTLSeconds: 60,
		AlertaUmbralKm:         500,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db, "../../migrations"))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	srv := httptest.NewServer(New(runCtx, cfg, db, rdb))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, cfg: cfg}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloMensual(t *testing.T) {
	env := setupTestEnv(t)
	tenant := uuid.New()
	tok := env.token(t, tenant)

	resp := do(t, env.server, http.MethodGet, "/health", nil, "")
	var health map[string]any
	decodeJSON(t, resp, &health)
	assert.Equal(t, "connected", health["redis"])

	// Truck and driver
	resp = do(t, env.server, http.MethodPost, "/v1/camiones", jsonBody(t, map[string]any{
		"placa": "PBA-1234", "modeloPago": "DUENO_PAGA", "tipoCalculo": "IDA_VUELTA",
		"montoBase": "500.00", "kilometrajeActual": 14800,
	}), tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var camion map[string]any
	decodeJSON(t, resp, &camion)

	resp = do(t, env.server, http.MethodPost, "/v1/choferes", jsonBody(t, map[string]any{
		"nombre": "Luis Andrade", "documento": "0912345678",
	}), tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var chofer map[string]any
	decodeJSON(t, resp, &chofer)

	// Empty month is cached as zeros and must be invalidated by the next write.
	resp = do(t, env.server, http.MethodGet, "/v1/reportes/mensual/2024-03", nil, tok)
	var vacio map[string]any
	decodeJSON(t, resp, &vacio)
	assert.Equal(t, "0.00", vacio["summary"].(map[string]any)["utilidadNeta"])

	// Round trip settlement
	resp = do(t, env.server, http.MethodPost, "/v1/fletes", jsonBody(t, map[string]any{
		"camionId": camion["id"], "choferId": chofer["id"], "fecha": "2024-03-10T10:00:00Z",
		"ingreso": "1200.00", "peajes": "50.00", "viaticos": "30.00", "otrosGastos": "20.00",
		"estado": "COMPLETADO",
	}), tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var flete map[string]any
	decodeJSON(t, resp, &flete)
	assert.Equal(t, "1000.00", flete["montoCalculado"])
	assert.Equal(t, "100.00", flete["ganancia"])

	// Plan due in 200 km, then serviced
	resp = do(t, env.server, http.MethodPost, "/v1/mantenimiento/planes", jsonBody(t, map[string]any{
		"camionId": camion["id"], "tipo": "Aceite", "cadaKm": 5000, "ultimoServicioKm": 10000,
	}), tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodPost, "/v1/mantenimiento/planes", jsonBody(t, map[string]any{
		"camionId": camion["id"], "tipo": "Aceite", "cadaKm": 8000,
	}), tok)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, http.MethodGet, "/v1/reportes/mensual/2024-03", nil, tok)
	var resumen map[string]any
	decodeJSON(t, resp, &resumen)
	assert.Equal(t, "1200.00", resumen["summary"].(map[string]any)["ingresos"])
	alertas := resumen["maintenanceAlerts"].([]any)
	require.Len(t, alertas, 1)
	assert.EqualValues(t, 200, alertas[0].(map[string]any)["restanteKm"])

	resp = do(t, env.server, http.MethodPost, "/v1/mantenimiento/servicios", jsonBody(t, map[string]any{
		"camionId": camion["id"], "fecha": "2024-03-20T10:00:00Z", "tipo": "Aceite",
		"kilometraje": 15200, "costo": "75.00",
	}), tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var servicio map[string]any
	decodeJSON(t, resp, &servicio)
	plan := servicio["planActualizado"].(map[string]any)
	assert.EqualValues(t, 20200, plan["proximoKm"])

	resp = do(t, env.server, http.MethodGet, "/v1/reportes/mensual/2024-03", nil, tok)
	decodeJSON(t, resp, &resumen)
	summary := resumen["summary"].(map[string]any)
	assert.Equal(t, "75.00", summary["gastoMantenimiento"])
	assert.Equal(t, "25.00", summary["utilidadNeta"])
	assert.Empty(t, resumen["maintenanceAlerts"])

	// Referenced truck cannot be deleted
	resp = do(t, env.server, http.MethodDelete, "/v1/camiones/"+camion["id"].(string), nil, tok)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Another tenant sees nothing
	otro := env.token(t, uuid.New())
	resp = do(t, env.server, http.MethodGet, "/v1/fletes/"+flete["id"].(string), nil, otro)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
