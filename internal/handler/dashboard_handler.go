package handler

import (
	"go-stockbook/internal/engine"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	engine *engine.Engine
}

func NewDashboardHandler(e *engine.Engine) *DashboardHandler {
	return &DashboardHandler{engine: e}
}

// GetReport returns the aggregate inventory report: totals, cumulative
// profit, stock valuation, top margin, low-stock list and best seller.
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	return c.JSON(h.engine.BuildReport())
}
