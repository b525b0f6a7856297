package handler

import (
	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OutboundHandler struct {
	service service.OutboundService
}

func NewOutboundHandler(s service.OutboundService) *OutboundHandler {
	return &OutboundHandler{service: s}
}

// SaveBatch reconciles a grid submission of tagged outbound rows
// POST /api/v1/outbound
func (h *OutboundHandler) SaveBatch(c *fiber.Ctx) error {
	var rows []model.OutboundRow
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

	return c.Status(201).JSON(fiber.Map{"message": "Outbound batch applied", "data": results})
}

// Create stores a single outbound row (PENDING, no reconciliation)
// POST /api/v1/outbound/one
func (h *OutboundHandler) Create(c *fiber.Ctx) error {
	var entry model.Outbound
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&entry, getUserID(c)); err != nil {
		return ledgerError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Outbound created", "data": entry})
}

// Update overwrites a single outbound row by id (no reconciliation)
// PUT /api/v1/outbound/:id
func (h *OutboundHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid outbound ID"})
	}

	var entry model.Outbound
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.Update(id, &entry, getUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Outbound updated", "data": updated})
}

// Delete removes a single outbound row by id (no reversal)
// DELETE /api/v1/outbound/:id
func (h *OutboundHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid outbound ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Outbound deleted"})
}

// Complete flips a PENDING row to COMPLETED
// POST /api/v1/outbound/:id/complete
func (h *OutboundHandler) Complete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid outbound ID"})
	}

	entry, err := h.service.Complete(id, getUserID(c))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Outbound completed", "data": entry})
}

// GetAll returns every outbound issue
// GET /api/v1/outbound
func (h *OutboundHandler) GetAll(c *fiber.Ctx) error {
	entries, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// GetByStockCode returns issues for one item code
// GET /api/v1/outbound/stock/:code
func (h *OutboundHandler) GetByStockCode(c *fiber.Ctx) error {
	entries, err := h.service.GetByStockCode(c.Params("code"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// GetByDate returns issues recorded on one day
// GET /api/v1/outbound/date/:date
func (h *OutboundHandler) GetByDate(c *fiber.Ctx) error {
	entries, err := h.service.GetByDate(c.Params("date"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(entries)
}

// GetByID returns one issue
// GET /api/v1/outbound/:id
func (h *OutboundHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid outbound ID"})
	}

	entry, err := h.service.GetByID(id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(entry)
}
