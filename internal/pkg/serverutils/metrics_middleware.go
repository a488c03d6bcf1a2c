package serverutils

import (
	"strconv"
	"time"

	"notekeeper-be/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency labelled by the matched route pattern,
// not the raw path, to keep label cardinality bounded.
func Metrics() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		path := "unknown"
		if route := ctx.Route(); route != nil && route.Path != "" {
			path = route.Path
		}
		status := strconv.Itoa(ctx.Response().StatusCode())
		method := ctx.Method()

		metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		return err
	}
}
