package handler

import (
	"github.com/gofiber/fiber/v2"
)

// AIStatus reports whether a generative credential is configured.
type AIStatus interface {
	Configured() bool
}

type HealthHandler struct {
	ai AIStatus
}

func NewHealthHandler(ai AIStatus) *HealthHandler {
	return &HealthHandler{ai: ai}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

// health reports liveness plus whether the AI paths are enabled. Search-only
// paths work either way.
func (h *HealthHandler) health(c *fiber.Ctx) error {
	ai := "disabled_missing_credential"
	if h.ai != nil && h.ai.Configured() {
		ai = "configured"
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"ai":     ai,
	})
}
