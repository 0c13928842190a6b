package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory is a process local backend on top of ttlcache.
type Memory struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemory starts the expiry loop of a new in-process backend.
func NewMemory() *Memory {
	items := ttlcache.New[string, []byte](
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)

	go items.Start()

	return &Memory{items: items}
}

// Get implements Backend.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	item := m.items.Get(key)
	if item == nil {
		return nil, nil
	}

	return item.Value(), nil
}

// Set implements Backend. A ttl <= 0 keeps the entry until it is deleted.
func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}

	m.items.Set(key, val, ttl)

	return nil
}

// Delete implements Backend.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.items.Delete(key)

	return nil
}

// Reset implements Backend.
func (m *Memory) Reset(context.Context) error {
	m.items.DeleteAll()

	return nil
}

// Close stops the expiry loop.
func (m *Memory) Close() error {
	m.items.Stop()

	return nil
}
