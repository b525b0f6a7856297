package handler

import (
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InboundHandler struct {
	service service.InboundService
}

func NewInboundHandler(s service.InboundService) *InboundHandler {
	return &InboundHandler{service: s}
}

// SaveBatch applies a grid submission of tagged inbound rows
// POST /api/v1/inbound
func (h *InboundHandler) SaveBatch(c *fiber.Ctx) error {
	var rows []model.InboundRow
	if err := c.BodyParser(&rows); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(rows) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Empty batch"})
	}

	results, err := h.service.SaveBatch(rows, getUserID(c), getUserName(c))
	if err != nil {
		return ledgerError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Inbound batch applied", "data": results})
}

// GetAll returns every inbound lot
// GET /api/v1/inbound
func (h *InboundHandler) GetAll(c *fiber.Ctx) error {
	entries, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// GetByStockCode returns lots for one item code
// GET /api/v1/inbound/stock/:code
func (h *InboundHandler) GetByStockCode(c *fiber.Ctx) error {
	entries, err := h.service.GetByStockCode(c.Params("code"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// GetByDate returns lots received on one day
// GET /api/v1/inbound/date/:date
func (h *InboundHandler) GetByDate(c *fiber.Ctx) error {
	entries, err := h.service.GetByDate(c.Params("date"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(entries)
}

// GetOne returns one lot by composite key
// GET /api/v1/inbound/:code/:date
func (h *InboundHandler) GetOne(c *fiber.Ctx) error {
	entry, err := h.service.GetOne(c.Params("code"), c.Params("date"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(entry)
}
