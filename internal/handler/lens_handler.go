package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/anilaldemir-collab/certificate-checker/internal/models"
	"github.com/anilaldemir-collab/certificate-checker/internal/service"
	"github.com/anilaldemir-collab/certificate-checker/internal/session"
)

// LensHandler wires HTTP → LensService: the photo-first wizard flow.
type LensHandler struct {
	svc service.LensService
}

// NewLensHandler returns a handler instance.
func NewLensHandler(svc service.LensService) *LensHandler {
	return &LensHandler{svc: svc}
}

// Register mounts the lens session routes on the given router group.
func (h *LensHandler) Register(r fiber.Router) {
	r.Post("/lens", h.begin)
	r.Get("/lens/:id", h.get)
	r.Post("/lens/:id/confirm", h.confirm)
	r.Post("/lens/:id/reject", h.reject)
	r.Post("/lens/:id/edit", h.edit)
	r.Post("/lens/:id/analyze", h.analyze)
}

// begin handles POST /lens  { "images": [ { "mime_type": "...", "data": "<base64>" } ] }
func (h *LensHandler) begin(c *fiber.Ctx) error {
	var req models.LensBeginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if len(req.Images) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "at least one image is required")
	}

	sess, err := h.svc.Begin(c.UserContext(), req.Images)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (h *LensHandler) get(c *fiber.Ctx) error {
	sess, err := h.svc.Get(c.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(sess)
}

func (h *LensHandler) confirm(c *fiber.Ctx) error {
	sess, err := h.svc.Confirm(c.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(sess)
}

func (h *LensHandler) reject(c *fiber.Ctx) error {
	sess, err := h.svc.Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(sess)
}

// edit handles POST /lens/:id/edit  { "brand": "...", "model": "..." }
func (h *LensHandler) edit(c *fiber.Ctx) error {
	var req models.LensEditRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if req.Brand == "" || req.Model == "" {
		return fiber.NewError(fiber.StatusBadRequest, "brand and model are required")
	}

	sess, err := h.svc.Edit(c.Params("id"), req.Brand, req.Model)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(sess)
}

func (h *LensHandler) analyze(c *fiber.Ctx) error {
	sess, err := h.svc.Analyze(c.UserContext(), c.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(sess)
}

// toHTTPError maps session errors onto HTTP statuses.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
}
