package infra

import (
	"context"
	"testing"
	"time"

	"flota/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// An unreachable Redis must behave like an empty cache and trip the breaker.
func TestResumenCache_RedisCaidoEsMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewResumenCache(rdb, time.Minute)
	ctx := context.Background()
	tenant := uuid.New()

	for i := 0; i < DefaultCBConfig().FailureThreshold; i++ {
		r, v, ok := c.Obtener(ctx, tenant, "2024-03")
		assert.False(t, ok)
		assert.Nil(t, r)
		assert.Equal(t, int64(-1), v)
	}
	assert.Equal(t, CBOpen, c.cb.State())

	// Open breaker: no network call, still a miss, no panic.
	c.Guardar(ctx, tenant, "2024-03", 0, &dto.ResumenMensualResponse{Month: "2024-03"})
	c.Invalidar(ctx, tenant)
	_, _, ok := c.Obtener(ctx, tenant, "2024-03")
	assert.False(t, ok)
}

func TestResumenKeyIncluyeVersion(t *testing.T) {
	tenant := uuid.MustParse("7f1c2a4e-2b1d-4c55-9d1a-1a2b3c4d5e6f")
	assert.Equal(t, "flota:resumen:7f1c2a4e-2b1d-4c55-9d1a-1a2b3c4d5e6f:3:2024-03", resumenKey(tenant, 3, "2024-03"))
	assert.Equal(t, "flota:resumen:v:7f1c2a4e-2b1d-4c55-9d1a-1a2b3c4d5e6f", versionKey(tenant))
}

func TestEsFallaRedis(t *testing.T) {
	assert.False(t, esFallaRedis(redis.Nil))
	assert.True(t, esFallaRedis(context.DeadlineExceeded))
}
