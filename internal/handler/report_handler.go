package handler

import (
	"strconv"

	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetStockMovement returns daily received/issued sums for charts
// Query params: days (default 7)
// GET /api/v1/dashboard/stock-movement
func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetStockLevels returns remaining quantity per stock code
// GET /api/v1/dashboard/stock-levels
func (h *ReportHandler) GetStockLevels(c *fiber.Ctx) error {
	levels, err := h.service.GetStockLevels()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock levels"})
	}
	return c.JSON(levels)
}
