package serverutils

import (
	"errors"

	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope.
// Domain errors keep their message; anything unknown becomes a generic 500 and is logged.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := classify(err)
		if code == fiber.StatusInternalServerError {
			log.Error("http", "unhandled error", map[string]interface{}{
				"error":      err,
				"method":     ctx.Method(),
				"path":       ctx.Path(),
				"request_id": RequestID(ctx),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, apperror.ErrUnauthenticated):
		return fiber.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperror.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials"
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
