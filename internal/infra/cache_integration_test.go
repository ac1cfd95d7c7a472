//go:build integration

package infra

import (
	"context"
	"testing"
	"time"

	"flota/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func nuevoRedis(t *testing.T) *ResumenCache {
	t.Helper()
	ctx := context.Background()

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := NewRedis(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return NewResumenCache(rdb, time.Minute)
}

func TestResumenCache_GuardarEInvalidar(t *testing.T) {
	c := nuevoRedis(t)
	ctx := context.Background()
	tenant := uuid.New()

	_, v, ok := c.Obtener(ctx, tenant, "2024-03")
	require.False(t, ok)
	assert.Equal(t, int64(0), v)

	c.Guardar(ctx, tenant, "2024-03", v, &dto.ResumenMensualResponse{Month: "2024-03"})
	r, v2, ok := c.Obtener(ctx, tenant, "2024-03")
	require.True(t, ok)
	assert.Equal(t, "2024-03", r.Month)
	assert.Equal(t, v, v2)

	c.Invalidar(ctx, tenant)
	_, v3, ok := c.Obtener(ctx, tenant, "2024-03")
	assert.False(t, ok)
	assert.Equal(t, v+1, v3)
	assert.Equal(t, CBClosed, c.cb.State())
}

// A summary computed before an invalidation must not be served after it.
func TestResumenCache_GuardarTrasInvalidarNoSirveDatosViejos(t *testing.T) {
	c := nuevoRedis(t)
	ctx := context.Background()
	tenant := uuid.New()

	_, v, ok := c.Obtener(ctx, tenant, "2024-03")
	require.False(t, ok)

	c.Invalidar(ctx, tenant)
	viejo := &dto.ResumenMensualResponse{Month: "2024-03"}
	viejo.Summary.Ingresos = "0.00"
	c.Guardar(ctx, tenant, "2024-03", v, viejo)

	r, _, ok := c.Obtener(ctx, tenant, "2024-03")
	assert.False(t, ok)
	assert.Nil(t, r)
}
