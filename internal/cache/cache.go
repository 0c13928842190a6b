// Package cache is the application cache used by the settings store. A Cache
// wraps one Backend and adds get-or-compute, invalidation and flushing.
package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Backend stores opaque payloads. Get returns nil, nil on a miss.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Reset(ctx context.Context) error
	Close() error
}

// ComputeFunc produces the payload of a missing key.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Cache is the get-or-compute front of a Backend.
type Cache struct {
	backend Backend
	name    string
}

// New wraps backend. name labels the metrics and log lines.
func New(name string, backend Backend) *Cache {
	if backend == nil {
		panic("cache backend cannot be nil")
	}

	registerMetrics()

	return &Cache{backend: backend, name: name}
}

// Name returns the backend label.
func (c *Cache) Name() string {
	return c.name
}

// GetOrSet returns the payload of key, calling compute and storing its
// result on a miss. Backend read failures count as a miss, write failures
// are logged and the computed payload is returned anyway. Errors of compute
// are returned unchanged and nothing is stored.
func (c *Cache) GetOrSet(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	val, err := c.backend.Get(ctx, key)

	switch {
	case err != nil:
		observe(c.name, resultError)
		log.Warn().Err(err).Str("cache", c.name).Str("key", key).Msg("cache read failed, computing value")
	case val != nil:
		observe(c.name, resultHit)
		log.Trace().Str("cache", c.name).Str("key", key).Msg("cache hit")

		return val, nil
	default:
		observe(c.name, resultMiss)
		log.Debug().Str("cache", c.name).Str("key", key).Msg("cache miss")
	}

	val, err = compute(ctx)
	if err != nil {
		return nil, err
	}

	if err = c.backend.Set(ctx, key, val, ttl); err != nil {
		observe(c.name, resultError)
		log.Warn().Err(err).Str("cache", c.name).Str("key", key).Msg("failed to store computed value")
	}

	return val, nil
}

// Delete invalidates key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(c.backend.Delete(ctx, key), "cache %s: delete %s", c.name, key)
}

// Flush removes every entry of the backend.
func (c *Cache) Flush(ctx context.Context) error {
	if err := c.backend.Reset(ctx); err != nil {
		return errors.Wrapf(err, "cache %s: flush", c.name)
	}

	log.Info().Str("cache", c.name).Msg("cache flushed")

	return nil
}

// Close releases the backend.
func (c *Cache) Close() error {
	return errors.Wrapf(c.backend.Close(), "cache %s: close", c.name)
}
