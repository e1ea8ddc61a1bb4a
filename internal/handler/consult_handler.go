package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
	"github.com/anilaldemir-collab/certificate-checker/internal/service"
)

// ConsultHandler wires HTTP → ConsultService.
type ConsultHandler struct {
	svc service.ConsultService
}

// NewConsultHandler returns a handler instance.
func NewConsultHandler(svc service.ConsultService) *ConsultHandler {
	return &ConsultHandler{svc: svc}
}

// Register mounts POST /consult on the given router group.
func (h *ConsultHandler) Register(r fiber.Router) {
	r.Post("/consult", h.consult)
}

// consult handles POST /consult
//
//	{ "persona": "auditor", "question": "...", "mode": "deep", "images": [...] }
//
// The response is always 200 with an answer field; AI failures arrive as a
// diagnostic answer with degraded=true, never as a transport error.
func (h *ConsultHandler) consult(c *fiber.Ctx) error {
	var req models.ConsultRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.Question == "" {
		return fiber.NewError(fiber.StatusBadRequest, "question is required")
	}

	return c.JSON(h.svc.Consult(c.UserContext(), req))
}
