package handler

import (
	"github.com/RomRom16/dossierfortil/internal/database"
	"github.com/RomRom16/dossierfortil/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK
	if h.db == nil || h.db.Ping(c.Context()) != nil {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return response.JSON(c, code, fiber.Map{"status": status})
}
