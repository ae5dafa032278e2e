package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps errors bubbling out of handlers to JSON
// responses. Validation failures become 400s, fiber errors keep their code,
// everything else is a 500 with the message passed through.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(
				ErrorResponse("Validation failed", validationErr.Fields),
			)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(
				ErrorResponse(fiberErr.Message, nil),
			)
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse(err.Error(), nil),
		)
	}
}
