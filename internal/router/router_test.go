package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flota/internal/config"
	"flota/internal/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const secret = "router-test-secret"

func nuevoMotor(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	cfg := &config.Config{Env: "test", JWTSecret: secret, RateLimit: 100, AlertaUmbralKm: 500}
	return New(ctx, cfg, db, nil), mock
}

func firmar(t *testing.T, rol string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.JWTClaims{
		UserID:   uuid.NewString(),
		TenantID: uuid.NewString(),
		Rol:      rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func servir(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthSinRedis(t *testing.T) {
	r, _ := nuevoMotor(t)
	w := servir(r, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"disabled"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestMetricsExpuesto(t *testing.T) {
	r, _ := nuevoMotor(t)
	servir(r, http.MethodGet, "/health", "", "")
	w := servir(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flota_http_requests_total")
}

func TestRolesPorRuta(t *testing.T) {
	r, mock := nuevoMotor(t)

	cases := []struct {
		method, path, rol string
	}{
		{http.MethodPost, "/v1/camiones", middleware.RolSupervisor},
		{http.MethodDelete, "/v1/choferes/" + uuid.NewString(), middleware.RolOperador},
		{http.MethodPost, "/v1/fletes", middleware.RolOperador},
		{http.MethodPost, "/v1/combustible", middleware.RolOperador},
		{http.MethodPost, "/v1/mantenimiento/servicios", middleware.RolOperador},
		{http.MethodPost, "/v1/reportes/mensual/2024-03/enviar", middleware.RolOperador},
		{http.MethodGet, "/v1/fletes", "invitado"},
	}
	for _, tc := range cases {
		w := servir(r, tc.method, tc.path, firmar(t, tc.rol), "{}")
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s como %s", tc.method, tc.path, tc.rol)
	}
	assert.NoError(t, mock.ExpectationsWereMet(), "rechazado antes de tocar la base")
}

func TestSinTokenNoAutorizado(t *testing.T) {
	r, _ := nuevoMotor(t)
	w := servir(r, http.MethodGet, "/v1/camiones", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOperadorLeeCamiones(t *testing.T) {
	r, mock := nuevoMotor(t)
	mock.ExpectQuery(`SELECT \* FROM "camiones"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "placa"}))

	w := servir(r, http.MethodGet, "/v1/camiones", firmar(t, middleware.RolOperador), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
