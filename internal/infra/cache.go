package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flota/internal/dto"
	"flota/internal/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ResumenCache caches monthly summaries in Redis. Every tenant has a version
// counter; entries are keyed by it, so Invalidar is a single INCR and stale
// entries simply expire. Guardar writes under the version Obtener saw, never
// the current one: a summary computed across an invalidation lands on a key
// nobody reads anymore. All methods are best-effort: Redis errors are logged,
// counted by the breaker and reported as a miss.
type ResumenCache struct {
	rdb *redis.Client
	cb  *CircuitBreaker
	ttl time.Duration
}

// NewResumenCache requires a non-nil client. ttl ≤ 0 defaults to 10 minutes.
func NewResumenCache(rdb *redis.Client, ttl time.Duration) *ResumenCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	cfg := DefaultCBConfig()
	cfg.IsFailure = esFallaRedis
	return &ResumenCache{
		rdb: rdb,
		cb:  NewCircuitBreaker("resumen-cache", cfg),
		ttl: ttl,
	}
}

// esFallaRedis ignores redis.Nil: a missing key is a valid answer.
func esFallaRedis(err error) bool {
	return !errors.Is(err, redis.Nil)
}

func versionKey(tenantID uuid.UUID) string {
	return "flota:resumen:v:" + tenantID.String()
}

func resumenKey(tenantID uuid.UUID, version int64, mes string) string {
	return fmt.Sprintf("flota:resumen:%s:%d:%s", tenantID, version, mes)
}

// version returns the current tenant version; a missing counter is version 0.
func (c *ResumenCache) version(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var v int64
	err := c.cb.Execute(func() error {
		var err error
		v, err = c.rdb.Get(ctx, versionKey(tenantID)).Int64()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Obtener returns the cached summary and the tenant version it was looked up
// under. version is -1 when Redis could not be read.
func (c *ResumenCache) Obtener(ctx context.Context, tenantID uuid.UUID, mes string) (*dto.ResumenMensualResponse, int64, bool) {
	v, err := c.version(ctx, tenantID)
	if err != nil {
		c.logError(err, "obtener")
		return nil, -1, false
	}

	var raw []byte
	err = c.cb.Execute(func() error {
		var err error
		raw, err = c.rdb.Get(ctx, resumenKey(tenantID, v, mes)).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, v, false
	}
	if err != nil {
		c.logError(err, "obtener")
		return nil, v, false
	}

	var r dto.ResumenMensualResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		log.Warn().Err(err).Msg("resumen cache: entrada corrupta")
		return nil, v, false
	}
	return &r, v, true
}

// Guardar stores r under version, as returned by Obtener. A negative version
// is ignored.
func (c *ResumenCache) Guardar(ctx context.Context, tenantID uuid.UUID, mes string, version int64, r *dto.ResumenMensualResponse) {
	if version < 0 {
		return
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return
	}
	err = c.cb.Execute(func() error {
		return c.rdb.Set(ctx, resumenKey(tenantID, version, mes), raw, c.ttl).Err()
	})
	if err != nil {
		c.logError(err, "guardar")
	}
}

func (c *ResumenCache) Invalidar(ctx context.Context, tenantID uuid.UUID) {
	err := c.cb.Execute(func() error {
		return c.rdb.Incr(ctx, versionKey(tenantID)).Err()
	})
	if err != nil {
		// A lost invalidation leaves a stale entry for at most ttl.
		c.logError(err, "invalidar")
	}
}

func (c *ResumenCache) logError(err error, op string) {
	metrics.IncResumenCache("error")
	if errors.Is(err, ErrCircuitOpen) {
		return
	}
	log.Warn().Err(err).Str("op", op).Msg("resumen cache: redis no disponible")
}
