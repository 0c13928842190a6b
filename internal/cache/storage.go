package cache

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Storage adapts a fiber storage driver (mysql, postgres) to Backend.
type Storage struct {
	storage fiber.Storage
}

// NewStorage wraps storage.
func NewStorage(storage fiber.Storage) *Storage {
	return &Storage{storage: storage}
}

// Get implements Backend.
func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.storage.Get(key)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if len(val) == 0 {
		return nil, nil
	}

	return val, nil
}

// Set implements Backend. A ttl <= 0 keeps the entry until it is deleted.
func (s *Storage) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	return s.storage.Set(key, val, ttl) //nolint:wrapcheck
}

// Delete implements Backend.
func (s *Storage) Delete(_ context.Context, key string) error {
	return s.storage.Delete(key) //nolint:wrapcheck
}

// Reset implements Backend. It truncates the storage table.
func (s *Storage) Reset(context.Context) error {
	return s.storage.Reset() //nolint:wrapcheck
}

// Close implements Backend.
func (s *Storage) Close() error {
	return s.storage.Close() //nolint:wrapcheck
}
