package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/repositories"
	"storefront/internal/services"
)

// currentUserID reads the authenticated user's ID placed in the locals by
// the JWT middleware.
func currentUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("user_id").(string)
	return id, ok && id != ""
}

// statusForError maps the service and store failure taxonomy onto HTTP
// statuses. Anything unrecognized is a transaction failure and becomes a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repositories.ErrInsufficientStock),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidQuantity):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, repositories.ErrProductNotFound),
		errors.Is(err, repositories.ErrCartItemNotFound),
		errors.Is(err, repositories.ErrOrderNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// validationErrorResponse renders validator failures the same way across
// handlers.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
