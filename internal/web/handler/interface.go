package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/settings-admin/settings-admin/internal/config"
	"github.com/settings-admin/settings-admin/internal/settings"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, svc *settings.Service)
}

// Response is the json body of api errors and messages.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
