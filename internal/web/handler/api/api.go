// Package api exposes the settings as json.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/settings-admin/settings-admin/internal/config"
	"github.com/settings-admin/settings-admin/internal/settings"
	"github.com/settings-admin/settings-admin/internal/settings/definition"
	"github.com/settings-admin/settings-admin/internal/web/handler"
)

const (
	// Path is the collection path of the settings api.
	Path = handler.APIPath + "settings"

	// KeyPath addresses one setting.
	KeyPath = Path + "/:key"
)

// Item is the json view of one setting.
type Item struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	DataType  string `json:"dataType"`
	InputType string `json:"inputType"`
	Value     any    `json:"value"`
	Default   any    `json:"default"`
	IsDefault bool   `json:"isDefault"`
}

// SetRequest is the body of a PUT request.
type SetRequest struct {
	Value any `json:"value"`
}

// Service is the settings api handler service.
type Service struct {
	handler.Service
	svc *settings.Service
}

// Handler is the settings api handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the settings api handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *settings.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilASFatalLogMsg)
		return
	}

	s.svc = svc

	app.Get(Path, s.List)
	app.Get(KeyPath, s.Get)
	app.Put(KeyPath, s.Put)
	app.Delete(KeyPath, s.Delete)
}

func newItem(store *settings.Store, def definition.Definition) Item {
	return Item{
		Key:       def.Key,
		Label:     def.Label,
		DataType:  string(def.DataType),
		InputType: string(def.InputType),
		Value:     store.Get(def.Key),
		Default:   def.Default(),
		IsDefault: store.IsDefault(def.Key),
	}
}

func respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(handler.Response{Success: status < fiber.StatusBadRequest, Message: message})
}

func (s *Service) open(c *fiber.Ctx) (*settings.Store, error) {
	store, err := s.svc.Open(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")

		return nil, respond(c, fiber.StatusInternalServerError, "failed to load settings")
	}

	return store, nil
}

// List returns every value definition with its effective value.
func (s *Service) List(c *fiber.Ctx) error {
	store, err := s.open(c)
	if store == nil {
		return err
	}

	defs := store.Registry().Values()
	items := make([]Item, 0, len(defs))

	for _, def := range defs {
		items = append(items, newItem(store, def))
	}

	return c.JSON(items)
}

// Get returns one setting.
func (s *Service) Get(c *fiber.Ctx) error {
	store, err := s.open(c)
	if store == nil {
		return err
	}

	def, ok := store.Registry().Lookup(c.Params("key"))
	if !ok || def.IsDelimiter() {
		return respond(c, fiber.StatusNotFound, "unknown setting key")
	}

	return c.JSON(newItem(store, def))
}

// Put stores the override of one setting. A null value resets it.
func (s *Service) Put(c *fiber.Ctx) error {
	var req SetRequest

	if err := c.BodyParser(&req); err != nil {
		return respond(c, fiber.StatusBadRequest, "invalid request body")
	}

	store, err := s.open(c)
	if store == nil {
		return err
	}

	key := c.Params("key")

	def, ok := store.Registry().Lookup(key)
	if !ok || def.IsDelimiter() {
		return respond(c, fiber.StatusNotFound, "unknown setting key")
	}

	if req.Value != nil {
		text, ok := req.Value.(string)
		if !ok {
			text, _ = def.DataType.Encode(req.Value)
		}

		if msg := s.svc.Schema().ValidateKey(key, text); msg != "" {
			return respond(c, fiber.StatusUnprocessableEntity, msg)
		}
	}

	if err = store.Set(c.UserContext(), key, req.Value); err != nil {
		return s.writeError(c, key, err)
	}

	return c.JSON(newItem(store, def))
}

// Delete resets one setting to its default.
func (s *Service) Delete(c *fiber.Ctx) error {
	store, err := s.open(c)
	if store == nil {
		return err
	}

	key := c.Params("key")

	if err = store.Delete(c.UserContext(), key); err != nil {
		return s.writeError(c, key, err)
	}

	def, _ := store.Registry().Lookup(key)

	return c.JSON(newItem(store, def))
}

func (s *Service) writeError(c *fiber.Ctx, key string, err error) error {
	switch {
	case errors.Is(err, settings.ErrUnknownKey):
		return respond(c, fiber.StatusNotFound, "unknown setting key")
	case errors.Is(err, settings.ErrOverrideNotFound):
		return respond(c, fiber.StatusConflict, "setting has no stored override")
	default:
		log.Error().Err(err).Str("key", key).Msg("failed to write setting")

		return respond(c, fiber.StatusInternalServerError, "failed to write setting")
	}
}
