package settings

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/settings-admin/settings-admin/internal/cache"
	"github.com/settings-admin/settings-admin/internal/settings/definition"
)

// Defaults of the cached settings payload.
const (
	DefaultCacheKey = "settings_handler_"
	DefaultCacheTTL = time.Hour
)

// Service is the long lived factory of Stores. It holds every collaborator
// a Store needs and is safe for concurrent use.
type Service struct {
	registry  *definition.Registry
	providers *definition.Providers
	schema    *definition.Schema
	db        *gorm.DB
	cache     *cache.Cache
	params    map[string]any
	cacheKey  string
	cacheTTL  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithParams sets the process parameters merged underneath stored overrides.
func WithParams(params map[string]any) Option {
	return func(s *Service) {
		s.params = params
	}
}

// WithCacheKey overrides the cache key of the settings payload.
func WithCacheKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.cacheKey = key
		}
	}
}

// WithCacheTTL overrides the lifetime of the cached payload.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithProviders sets the dynamic option providers.
func WithProviders(providers *definition.Providers) Option {
	return func(s *Service) {
		if providers != nil {
			s.providers = providers
		}
	}
}

// NewService checks the providers named by registry and compiles the
// validation schema.
func NewService(registry *definition.Registry, db *gorm.DB, c *cache.Cache, opts ...Option) (*Service, error) {
	if registry == nil {
		panic("registry cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if c == nil {
		panic("cache cannot be nil")
	}

	s := &Service{
		registry:  registry,
		providers: definition.NewProviders(),
		db:        db,
		cache:     c,
		cacheKey:  DefaultCacheKey,
		cacheTTL:  DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.providers.Check(registry); err != nil {
		return nil, err
	}

	schema, err := definition.NewSchema(registry)
	if err != nil {
		return nil, err
	}

	s.schema = schema

	return s, nil
}

// Open returns a freshly loaded Store.
func (s *Service) Open(ctx context.Context) (*Store, error) {
	store := &Store{
		registry: s.registry,
		db:       s.db,
		cache:    s.cache,
		params:   s.params,
		cacheKey: s.cacheKey,
		cacheTTL: s.cacheTTL,
	}

	if err := store.Reload(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// FlushCache clears the whole application cache.
func (s *Service) FlushCache(ctx context.Context) error {
	return s.cache.Flush(ctx)
}

// Registry returns the definitions.
func (s *Service) Registry() *definition.Registry {
	return s.registry
}

// Providers returns the dynamic option providers.
func (s *Service) Providers() *definition.Providers {
	return s.providers
}

// Schema returns the validation schema compiled from the registry.
func (s *Service) Schema() *definition.Schema {
	return s.schema
}
