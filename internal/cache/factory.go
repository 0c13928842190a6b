package cache

import (
	"context"
	"errors"

	storagemysql "github.com/gofiber/storage/mysql/v2"
	storagepostgres "github.com/gofiber/storage/postgres/v3"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/settings-admin/settings-admin/internal/config"
	"github.com/settings-admin/settings-admin/internal/db/dsn"
)

var (
	// ErrUnsupportedDriver is returned for an unknown cache driver.
	ErrUnsupportedDriver = errors.New("unsupported cache driver")
	// ErrDriverNeedsEngine is returned when a sql cache driver does not match the database engine.
	ErrDriverNeedsEngine = errors.New("sql cache driver requires the same database engine")
)

// FromConfig builds the cache configured in cfg.Cache. The sql drivers share
// the connection settings of cfg.DB.
func FromConfig(ctx context.Context, cfg *config.Config) (*Cache, error) {
	switch cfg.Cache.Driver {
	case "", config.CacheMemory:
		return New(config.CacheMemory, NewMemory()), nil
	case config.CacheRedis:
		backend, err := DialRedis(ctx, &redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Username: cfg.Cache.Redis.Username,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, err
		}

		return New(config.CacheRedis, backend), nil
	case config.CacheMySQL:
		if cfg.DB.GormEngine != config.EngineMySQL {
			return nil, pkgerrors.Wrap(ErrDriverNeedsEngine, cfg.Cache.Driver)
		}

		storage := storagemysql.New(storagemysql.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         cfg.Cache.Table,
		})

		return New(config.CacheMySQL, NewStorage(storage)), nil
	case config.CachePostgres:
		if cfg.DB.GormEngine != config.EnginePostgres {
			return nil, pkgerrors.Wrap(ErrDriverNeedsEngine, cfg.Cache.Driver)
		}

		storage := storagepostgres.New(storagepostgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         cfg.Cache.Table,
		})

		return New(config.CachePostgres, NewStorage(storage)), nil
	default:
		return nil, pkgerrors.Wrap(ErrUnsupportedDriver, cfg.Cache.Driver)
	}
}
