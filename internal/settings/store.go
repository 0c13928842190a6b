// Package settings resolves the effective value of every defined setting from
// the stored overrides, the process parameters and the definition defaults,
// and reconciles writes with the override table and the cache.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/settings-admin/settings-admin/internal/cache"
	"github.com/settings-admin/settings-admin/internal/db/controller/setting"
	"github.com/settings-admin/settings-admin/internal/settings/definition"
)

var (
	// ErrUnknownKey is returned by Set and Delete for keys without a value definition.
	ErrUnknownKey = errors.New("unknown setting key")
	// ErrPersistence is returned when the override table rejects a write.
	ErrPersistence = errors.New("failed to persist setting")
	// ErrOverrideNotFound is returned by Delete when the in-memory view holds a
	// value for a key that has no stored override.
	ErrOverrideNotFound = errors.New("setting override not found")
)

// Store is the request scoped view of the settings. It is not safe for
// concurrent use; build one per request with Service.Open.
type Store struct {
	registry *definition.Registry
	db       *gorm.DB
	cache    *cache.Cache
	params   map[string]any
	cacheKey string
	cacheTTL time.Duration

	values map[string]any
}

// Reload replaces the in-memory view with the cached overrides, computing
// them from the database on a miss. Params are merged underneath.
func (s *Store) Reload(ctx context.Context) error {
	raw, err := s.cache.GetOrSet(ctx, s.cacheKey, s.cacheTTL, func(ctx context.Context) ([]byte, error) {
		rows, err := s.GetAllFromDB(ctx)
		if err != nil {
			return nil, err
		}

		return json.Marshal(rows) //nolint:wrapcheck
	})
	if err != nil {
		return err
	}

	var rows map[string]*string

	if err = json.Unmarshal(raw, &rows); err != nil {
		log.Warn().Err(err).Str("key", s.cacheKey).Msg("discarding malformed cached settings")

		if rows, err = s.GetAllFromDB(ctx); err != nil {
			return err
		}
	}

	values := make(map[string]any, len(s.params)+len(rows))

	for k, v := range s.params {
		values[k] = v
	}

	for k, v := range rows {
		if v == nil {
			values[k] = nil
			continue
		}

		values[k] = *v
	}

	s.values = values

	return nil
}

// GetAllFromDB reads every stored override, bypassing the cache.
func (s *Store) GetAllFromDB(ctx context.Context) (map[string]*string, error) {
	rows, err := setting.GetAllValues(s.db.WithContext(ctx))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to read settings")
	}

	return rows, nil
}

// Get returns the effective value of key. A stored nil or "" counts as
// absent and falls back to the coerced default, then to nil.
func (s *Store) Get(key string) any {
	def, defined := s.registry.Lookup(key)

	if raw := s.values[key]; raw != nil && raw != "" {
		if !defined {
			return definition.String.Coerce(raw)
		}

		return def.Coerce(raw)
	}

	if defined {
		return def.Default()
	}

	return nil
}

// GetString returns Get(key) as a string.
func (s *Store) GetString(key string) string {
	return cast.ToString(s.Get(key))
}

// GetInt returns Get(key) as an int.
func (s *Store) GetInt(key string) int {
	return cast.ToInt(s.Get(key))
}

// GetBool returns Get(key) as a bool.
func (s *Store) GetBool(key string) bool {
	return cast.ToBool(s.Get(key))
}

// GetFloat returns Get(key) as a float64.
func (s *Store) GetFloat(key string) float64 {
	return cast.ToFloat64(s.Get(key))
}

// IsDefault reports whether key has no entry or a nil entry. Unlike Get it
// treats a stored "" as an override.
func (s *Store) IsDefault(key string) bool {
	v, ok := s.values[key]

	return !ok || v == nil
}

// Set stores value as the override of key. A nil value, or an empty value of
// a key with EmptyMeansDefault, deletes the override instead. So does a value
// that coerces to nil.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	def, err := s.lookup(key)
	if err != nil {
		return err
	}

	if value == nil || (def.EmptyMeansDefault && value == "") {
		return s.Delete(ctx, key)
	}

	coerced := def.Coerce(value)
	if coerced == nil {
		log.Debug().Str("key", key).Msg("value coerces to nil, deleting override")

		return s.Delete(ctx, key)
	}

	text, err := def.DataType.Encode(coerced)
	if err != nil {
		return pkgerrors.Wrapf(ErrPersistence, "%s: %v", key, err)
	}

	var description *string
	if def.Description != "" {
		description = &def.Description
	}

	if _, err = setting.Set(s.db.WithContext(ctx), key, &text, description); err != nil {
		return pkgerrors.Wrapf(ErrPersistence, "%s: %v", key, err)
	}

	s.invalidate(ctx)
	s.values[key] = coerced

	log.Debug().Str("key", key).Str("value", text).Msg("setting stored")

	return nil
}

// Delete removes the override of key. A missing row is success only while
// the in-memory view has no value for key either.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.lookup(key); err != nil {
		return err
	}

	err := setting.DeleteByKey(s.db.WithContext(ctx), key)

	switch {
	case err == nil:
	case errors.Is(err, setting.ErrSettingNotFound):
		if !s.IsDefault(key) {
			return pkgerrors.Wrap(ErrOverrideNotFound, key)
		}
	default:
		return pkgerrors.Wrapf(ErrPersistence, "%s: %v", key, err)
	}

	s.invalidate(ctx)
	delete(s.values, key)

	log.Debug().Str("key", key).Msg("setting reset to default")

	return nil
}

// Registry returns the definitions the store resolves against.
func (s *Store) Registry() *definition.Registry {
	return s.registry
}

// Definitions returns all definitions in declaration order.
func (s *Store) Definitions() []definition.Definition {
	return s.registry.Definitions()
}

func (s *Store) lookup(key string) (definition.Definition, error) {
	def, ok := s.registry.Lookup(key)
	if !ok || def.IsDelimiter() {
		return definition.Definition{}, pkgerrors.Wrap(ErrUnknownKey, key)
	}

	return def, nil
}

// invalidate drops the cached payload. The database write already
// succeeded, so a failing cache only delays visibility for other stores.
func (s *Store) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, s.cacheKey); err != nil {
		log.Warn().Err(err).Str("key", s.cacheKey).Msg("failed to invalidate settings cache")
	}
}
