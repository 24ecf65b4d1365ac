package handler

import (
	"strconv"

	"go-stockbook/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

// MetricsMiddleware counts every request by method, route and status.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		metrics.HTTPRequests.WithLabelValues(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()
		return err
	}
}
