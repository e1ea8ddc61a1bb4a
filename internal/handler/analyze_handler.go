package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
	"github.com/anilaldemir-collab/certificate-checker/internal/service"
)

// AnalyzeHandler wires HTTP → AnalysisService.
type AnalyzeHandler struct {
	svc service.AnalysisService
}

// NewAnalyzeHandler returns a handler instance.
func NewAnalyzeHandler(svc service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

// Register mounts POST /analyze on the given router group.
func (h *AnalyzeHandler) Register(r fiber.Router) {
	r.Post("/analyze", h.analyze)
}

// analyze handles POST /analyze  { "brand": "Revit", "model": "Sand 4" }
func (h *AnalyzeHandler) analyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.Brand == "" || req.Model == "" {
		return fiber.NewError(fiber.StatusBadRequest, "brand and model are required")
	}

	report, err := h.svc.Analyze(c.UserContext(), req.Brand, req.Model)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(report)
}
