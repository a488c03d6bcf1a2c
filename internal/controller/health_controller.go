package controller

import (
	"notekeeper-be/internal/health"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Liveness(ctx *fiber.Ctx) error
	Readiness(ctx *fiber.Ctx) error
}

type healthController struct {
	checker  *health.Checker
	gatherer prometheus.Gatherer
}

func NewHealthController(checker *health.Checker, gatherer prometheus.Gatherer) IHealthController {
	return &healthController{
		checker:  checker,
		gatherer: gatherer,
	}
}

// RegisterRoutes mounts the probes and the scrape endpoint. They are unauthenticated and live
// outside /api.
func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/healthz", c.Liveness)
	r.Get("/readyz", c.Readiness)
	r.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})))
}

func (c *healthController) Liveness(ctx *fiber.Ctx) error {
	return ctx.JSON(c.checker.Liveness(ctx.UserContext()))
}

func (c *healthController) Readiness(ctx *fiber.Ctx) error {
	res := c.checker.Readiness(ctx.UserContext())
	if res.Status != "up" {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(res)
	}
	return ctx.JSON(res)
}
