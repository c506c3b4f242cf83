package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stocktrail/backend/internal/http/dto"
	"github.com/stocktrail/backend/internal/services"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 with the message masked.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
		msg = err.Error()
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
		msg = err.Error()
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
		msg = err.Error()
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}
