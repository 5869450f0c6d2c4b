package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/pageflow/internal/service"
	"github.com/maheshrc27/pageflow/internal/transfer"
)

type PublishHandler struct {
	s service.FacebookService
}

func NewPublishHandler(service service.FacebookService) *PublishHandler {
	return &PublishHandler{s: service}
}

func (h *PublishHandler) Publish(c *fiber.Ctx) error {
	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON payload.",
		})
	}

	result, err := h.s.Publish(c.Context(), &req)
	if err != nil {
		var perr *service.PublishError
		if errors.As(err, &perr) {
			return c.Status(perr.Status).JSON(fiber.Map{
				"error": perr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
