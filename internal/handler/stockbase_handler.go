package handler

import (
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockBaseHandler struct {
	service service.StockBaseService
}

func NewStockBaseHandler(s service.StockBaseService) *StockBaseHandler {
	return &StockBaseHandler{service: s}
}

// Create adds a catalog entry
// POST /api/v1/basecode
func (h *StockBaseHandler) Create(c *fiber.Ctx) error {
	var entry model.StockBase
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&entry); err != nil {
		return ledgerError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock base created", "data": entry})
}

// Update overwrites a catalog entry by code
// PUT /api/v1/basecode/:code
func (h *StockBaseHandler) Update(c *fiber.Ctx) error {
	var entry model.StockBase
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.Update(c.Params("code"), &entry)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock base updated", "data": updated})
}

// Delete removes a catalog entry by code
// DELETE /api/v1/basecode/:code
func (h *StockBaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("code")); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock base deleted"})
}

// GetAll returns the whole catalog
// GET /api/v1/basecode
func (h *StockBaseHandler) GetAll(c *fiber.Ctx) error {
	// Optional category filter
	if category := c.Query("category"); category != "" {
		entries, err := h.service.GetByCategory(category)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(entries)
	}

	entries, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// GetByCode returns one catalog entry
// GET /api/v1/basecode/:code
func (h *StockBaseHandler) GetByCode(c *fiber.Ctx) error {
	entry, err := h.service.GetByCode(c.Params("code"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(entry)
}
