// Package daemon wires the database, cache, settings service and web
// service together.
package daemon

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/settings-admin/settings-admin/internal/cache"
	"github.com/settings-admin/settings-admin/internal/config"
	"github.com/settings-admin/settings-admin/internal/db"
	"github.com/settings-admin/settings-admin/internal/db/dsn"
	"github.com/settings-admin/settings-admin/internal/settings"
	"github.com/settings-admin/settings-admin/internal/settings/definition"
	"github.com/settings-admin/settings-admin/internal/web"
	"github.com/settings-admin/settings-admin/internal/web/session"
)

// SessionTable stores the web sessions on mysql and postgres.
const SessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	cache      *cache.Cache
}

// Start starts the web service and blocks until a termination signal.
func (d *Daemon) Start() error {
	errc := make(chan error, 1)

	go func() {
		errc <- d.webService.Start()
	}()

	d.webService.WaitShutdown()

	if err := d.cache.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close cache")
	}

	return <-errc
}

// LogLevelOptions lists the zerolog levels for select inputs.
func LogLevelOptions(context.Context) ([]definition.Option, error) {
	levels := []zerolog.Level{
		zerolog.TraceLevel,
		zerolog.DebugLevel,
		zerolog.InfoLevel,
		zerolog.WarnLevel,
		zerolog.ErrorLevel,
		zerolog.FatalLevel,
		zerolog.PanicLevel,
	}

	options := make([]definition.Option, 0, len(levels))
	for _, l := range levels {
		options = append(options, definition.Option{Value: l.String(), Label: strings.ToUpper(l.String())})
	}

	return options, nil
}

// NewProviders returns the option providers known to the daemon.
func NewProviders() *definition.Providers {
	providers := definition.NewProviders()
	providers.Register("log_levels", LogLevelOptions)

	return providers
}

// NewSettings opens the database and cache and builds the settings service.
func NewSettings(ctx context.Context, cfg *config.Config) (*settings.Service, *cache.Cache, error) {
	registry, err := definition.LoadRegistry(cfg.Settings.DefinitionsFile)
	if err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	c, err := cache.FromConfig(ctx, cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open cache")
	}

	svc, err := settings.NewService(registry, conn, c,
		settings.WithParams(cfg.Params),
		settings.WithCacheKey(cfg.Cache.Key),
		settings.WithCacheTTL(cfg.Cache.TTL),
		settings.WithProviders(NewProviders()),
	)
	if err != nil {
		_ = c.Close()

		return nil, nil, err
	}

	log.Info().
		Int("definitions", registry.Len()).
		Str("cache", c.Name()).
		Str("engine", cfg.DB.GormEngine).
		Msg("settings service ready")

	return svc, c, nil
}

// sessionStorage keeps the sessions next to the settings. sqlite falls back
// to the in-memory store.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         SessionTable,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         SessionTable,
		})
	default:
		return nil
	}
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil
	}

	svc, c, err := NewSettings(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	session.Init(sessionStorage(cfg), cfg.Webserver.Session)

	return &Daemon{
		webService: web.New(cfg, svc),
		cache:      c,
	}, nil
}
