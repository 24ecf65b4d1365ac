package handler

import (
	"fmt"

	"go-stockbook/internal/engine"
	"go-stockbook/internal/model"
	"go-stockbook/internal/ws"
	"go-stockbook/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type InventoryHandler struct {
	engine *engine.Engine
	hub    *ws.Hub
}

func NewInventoryHandler(e *engine.Engine, hub *ws.Hub) *InventoryHandler {
	return &InventoryHandler{engine: e, hub: hub}
}

type createProductRequest struct {
	Name      string          `json:"name" validate:"required,max=100"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

type recordTransactionRequest struct {
	ProductID int                   `json:"product_id" validate:"required,gt=0"`
	Kind      model.TransactionKind `json:"kind" validate:"required,oneof=IN OUT"`
	Quantity  int                   `json:"quantity" validate:"required,gt=0"`
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag),
		})
	}

	// Duplicate names are allowed; the response carries a warning so the
	// client can decide to surface it.
	duplicate := h.engine.HasProductNamed(req.Name)

	product, err := h.engine.RegisterProduct(req.Name, req.Quantity, req.CostPrice, req.SalePrice)
	if err != nil {
		return respondError(c, err)
	}
	h.hub.Publish("product_created", product)

	resp := fiber.Map{"message": "Product created", "data": product}
	if duplicate {
		resp["warning"] = "a product with this name already exists"
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	product, err := h.engine.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	return c.JSON(h.engine.ListProducts())
}

func (h *InventoryHandler) SearchProducts(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter 'q' required"})
	}
	results := h.engine.FindProducts(term)
	if results == nil {
		results = []model.Product{}
	}
	return c.JSON(results)
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var upd engine.ProductUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.engine.UpdateProduct(id, upd)
	if err != nil {
		return respondError(c, err)
	}
	h.hub.Publish("product_updated", product)
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	removed, err := h.engine.DeleteProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	h.hub.Publish("product_deleted", removed)

	resp := fiber.Map{"message": "Product deleted"}
	if removed.StockQuantity > 0 {
		resp["warning"] = fmt.Sprintf("product still had %d units in stock", removed.StockQuantity)
	}
	return c.JSON(resp)
}

func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req recordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag),
		})
	}

	switch req.Kind {
	case model.KindInbound:
		tx, err := h.engine.RecordInbound(req.ProductID, req.Quantity)
		if err != nil {
			return respondError(c, err)
		}
		h.hub.Publish("transaction_recorded", tx)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})

	case model.KindOutbound:
		res, err := h.engine.RecordOutbound(req.ProductID, req.Quantity)
		if err != nil {
			return respondError(c, err)
		}
		h.hub.Publish("transaction_recorded", res.Transaction)
		if res.LowStock {
			h.hub.Publish("low_stock_alert", fiber.Map{
				"product_id":      res.Transaction.ProductID,
				"product_name":    res.Transaction.ProductName,
				"remaining_stock": res.RemainingStock,
			})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":   "Transaction recorded",
			"data":      res.Transaction,
			"low_stock": res.LowStock,
		})

	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Kind must be IN or OUT"})
	}
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	return c.JSON(h.engine.ListTransactions(limit))
}

// respondError maps engine errors to HTTP status codes. A persistence
// failure after a mutation means the change is applied in memory but not
// durable yet; the body says so.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case engine.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case engine.IsNotFoundError(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case engine.IsInsufficientStockError(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case engine.IsPersistenceError(err):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"detail": "the change is applied in memory but could not be saved",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
