// Package settings serves the generated settings form.
package settings

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/settings-admin/settings-admin/internal/config"
	"github.com/settings-admin/settings-admin/internal/settings"
	"github.com/settings-admin/settings-admin/internal/web/handler"
	"github.com/settings-admin/settings-admin/internal/web/navigation"
	"github.com/settings-admin/settings-admin/internal/web/session"
)

const (
	// Path is the path to the settings page.
	Path = handler.RootPath + "settings"

	// FlushPath clears the application cache.
	FlushPath = Path + "/cache/flush"

	// TemplateName is the name of the settings template.
	TemplateName = "settings/index"
)

// Service is the settings form handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	svc *settings.Service
}

// Handler is the settings form handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the settings form handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *settings.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilASFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.svc = svc

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
	app.Post(FlushPath, s.Flush)
}

func newNavigation() *navigation.Context {
	return navigation.NewContext("System Settings", "settings", "index").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("System Settings", Path, true)
}

// Get renders the settings form pre-populated with the effective values.
func (s *Service) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()

	store, err := s.svc.Open(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	stored, err := store.GetAllFromDB(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load stored settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	flash, err := session.PopFlash(c)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read flash message")
	}

	nav := newNavigation()
	sections := buildForm(ctx, store, s.svc.Providers(), stored, nil, nil, nav)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"Sections":   sections,
		"Flash":      flash,
		"FlushPath":  FlushPath,
	}, handler.BaseLayout)
}

// Post validates and applies a form submission, then redirects back to the
// form. A rejected submission is rendered again with its messages.
func (s *Service) Post(c *fiber.Ctx) error {
	ctx := c.UserContext()
	submitted, resets := parseForm(c)

	store, err := s.svc.Open(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	stored, err := store.GetAllFromDB(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load stored settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load settings")
	}

	if failures := s.svc.Schema().Validate(submitted); len(failures) > 0 {
		log.Debug().Int("failures", len(failures)).Msg("settings form rejected")

		nav := newNavigation()
		sections := buildForm(ctx, store, s.svc.Providers(), stored, submitted, failures, nav)

		return c.Status(fiber.StatusBadRequest).Render(TemplateName, fiber.Map{
			"Title":      s.cfg.Title,
			"Navigation": nav,
			"Sections":   sections,
			"Errors":     failures,
			"Flash":      &session.Flash{Kind: session.FlashDanger, Message: "Please correct the errors below."},
			"FlushPath":  FlushPath,
		}, handler.BaseLayout)
	}

	res := apply(ctx, store, submitted, resets, stored)

	log.Info().
		Int("saved", res.Saved).
		Int("reset", res.Reset).
		Int("failed", res.Failed).
		Msg("settings form applied")

	kind := session.FlashSuccess
	if res.Failed > 0 {
		kind = session.FlashDanger
	}

	if err = session.SetFlash(c, session.Flash{Kind: kind, Message: res.Message()}); err != nil {
		log.Warn().Err(err).Msg("failed to store flash message")
	}

	return c.Redirect(Path, fiber.StatusSeeOther)
}

// Flush clears the whole application cache.
func (s *Service) Flush(c *fiber.Ctx) error {
	flash := session.Flash{Kind: session.FlashSuccess, Message: "Cache cleared successfully."}

	if err := s.svc.FlushCache(c.UserContext()); err != nil {
		log.Error().Err(err).Msg("failed to clear cache")

		flash = session.Flash{Kind: session.FlashDanger, Message: "Failed to clear cache."}
	}

	if err := session.SetFlash(c, flash); err != nil {
		log.Warn().Err(err).Msg("failed to store flash message")
	}

	return c.Redirect(Path, fiber.StatusSeeOther)
}
