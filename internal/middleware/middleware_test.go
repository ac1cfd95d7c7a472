package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flota/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-prueba"

func init() { gin.SetMode(gin.TestMode) }

func firmar(t *testing.T, claims JWTClaims) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func servir(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	tenant := uuid.New()
	r := gin.New()
	r.GET("/p", JWTAuth(secret), func(c *gin.Context) {
		id, ok := GetTenantID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	w := servir(r, http.MethodGet, "/p", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = servir(r, http.MethodGet, "/p", "basura")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = servir(r, http.MethodGet, "/p", firmar(t, JWTClaims{UserID: "u", Rol: RolOperador}))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "sin tenant_id")

	vencido := firmar(t, JWTClaims{TenantID: tenant.String(), Rol: RolOperador,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}})
	w = servir(r, http.MethodGet, "/p", vencido)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = servir(r, http.MethodGet, "/p", firmar(t, JWTClaims{TenantID: tenant.String(), Rol: RolOperador}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenant.String(), w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.POST("/admin", JWTAuth(secret), RequireRole(RolAdministrador), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tenant := uuid.NewString()
	w := servir(r, http.MethodPost, "/admin", firmar(t, JWTClaims{TenantID: tenant, Rol: RolOperador}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = servir(r, http.MethodPost, "/admin", firmar(t, JWTClaims{TenantID: tenant, Rol: RolAdministrador}))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireRoleSinAuth(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRole(RolAdministrador), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusForbidden, servir(r, http.MethodGet, "/x", "").Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := servir(r, http.MethodGet, "/x", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestErrorHandlerUsaTaxonomia(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/nf", func(c *gin.Context) { _ = c.Error(apierror.NoEncontrado("camión no encontrado")) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("pq: connection reset")) })

	w := servir(r, http.MethodGet, "/nf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"camión no encontrado"}`, w.Body.String())

	w = servir(r, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	assert.Equal(t, http.StatusInternalServerError, servir(r, http.MethodGet, "/panic", "").Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiterPorTenant(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	r := gin.New()
	r.GET("/x", JWTAuth(secret), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	a := firmar(t, JWTClaims{TenantID: uuid.NewString(), Rol: RolOperador})
	b := firmar(t, JWTClaims{TenantID: uuid.NewString(), Rol: RolOperador})

	assert.Equal(t, http.StatusOK, servir(r, http.MethodGet, "/x", a).Code)
	assert.Equal(t, http.StatusOK, servir(r, http.MethodGet, "/x", a).Code)
	w := servir(r, http.MethodGet, "/x", a)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, servir(r, http.MethodGet, "/x", b).Code)
}

func TestRateLimiterPurge(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.allow("ip:1")
	rl.allow("ip:2")

	assert.Equal(t, 0, rl.Purge())
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, rl.Purge())

	ok, _ := rl.allow("ip:1")
	assert.True(t, ok)
}
