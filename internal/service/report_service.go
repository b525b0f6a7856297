package service

import (
	"time"

	"go-stock-ledger/internal/repository"
)

// Lots below this remaining quantity are flagged low on the dashboard.
const defaultLowStockThreshold = 10

type ReportService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetStockLevels() ([]repository.StockLevel, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.reportRepo.GetStockMovement(startDate, endDate)
}

func (s *reportService) GetStockLevels() ([]repository.StockLevel, error) {
	return s.reportRepo.GetStockLevels(defaultLowStockThreshold)
}
