package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
	"github.com/anilaldemir-collab/certificate-checker/internal/service"
)

// CouncilHandler wires HTTP → CouncilService.
type CouncilHandler struct {
	svc service.CouncilService
}

// NewCouncilHandler returns a handler instance.
func NewCouncilHandler(svc service.CouncilService) *CouncilHandler {
	return &CouncilHandler{svc: svc}
}

// Register mounts POST /council on the given router group.
func (h *CouncilHandler) Register(r fiber.Router) {
	r.Post("/council", h.convene)
}

// convene handles POST /council  { "brand": "...", "model": "...", "images": [...] }
func (h *CouncilHandler) convene(c *fiber.Ctx) error {
	var req models.CouncilRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.Brand == "" && req.Model == "" && len(req.Images) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "brand/model or images are required")
	}

	return c.JSON(h.svc.Convene(c.UserContext(), req))
}
