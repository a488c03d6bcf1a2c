package serverutils

import (
	"time"

	"notekeeper-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request. Register it before ErrorHandlerMiddleware so the
// logged status is the one actually rendered.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.IP(),
			"request_id": RequestID(ctx),
		}
		if userId, ok := ctx.Locals(LocalUserId).(string); ok {
			details["user_id"] = userId
		}

		if err != nil {
			details["error"] = err
			log.Error("http", "request failed", details)
			return err
		}
		log.Info("http", "request completed", details)
		return nil
	}
}
