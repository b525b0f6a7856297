package service

import (
	"errors"
	"fmt"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/pkg/validator"

	"gorm.io/gorm"
)

var ErrStockCodeExists = errors.New("stock base code already exists")

type StockBaseService interface {
	Create(entry *model.StockBase) error
	Update(code string, entry *model.StockBase) (*model.StockBase, error)
	Delete(code string) error
	GetAll() ([]model.StockBase, error)
	GetByCode(code string) (*model.StockBase, error)
	GetByCategory(category string) ([]model.StockBase, error)
}

type stockBaseService struct {
	stockBaseRepo repository.StockBaseRepository
}

func NewStockBaseService(stockBaseRepo repository.StockBaseRepository) StockBaseService {
	return &stockBaseService{stockBaseRepo: stockBaseRepo}
}

func (s *stockBaseService) Create(entry *model.StockBase) error {
	// 1. Validate struct
	if errs := validator.ValidateStruct(entry); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Reject duplicate codes
	existing, _ := s.stockBaseRepo.FindByCode(entry.Code)
	if existing != nil {
		return ErrStockCodeExists
	}

	return s.stockBaseRepo.Create(entry)
}

func (s *stockBaseService) Update(code string, entry *model.StockBase) (*model.StockBase, error) {
	existing, err := s.stockBaseRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "stock base", Key: code}
	}
	if err != nil {
		return nil, err
	}

	existing.Name = entry.Name
	existing.Category = entry.Category
	existing.Unit = entry.Unit
	existing.MaxUsePeriod = entry.MaxUsePeriod
	existing.Remark = entry.Remark
	existing.IsAlert = entry.IsAlert
	existing.IsActive = entry.IsActive

	if err := s.stockBaseRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *stockBaseService) Delete(code string) error {
	if _, err := s.stockBaseRepo.FindByCode(code); errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: "stock base", Key: code}
	}
	return s.stockBaseRepo.Delete(code)
}

func (s *stockBaseService) GetAll() ([]model.StockBase, error) {
	return s.stockBaseRepo.FindAll()
}

func (s *stockBaseService) GetByCode(code string) (*model.StockBase, error) {
	entry, err := s.stockBaseRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "stock base", Key: code}
	}
	return entry, err
}

func (s *stockBaseService) GetByCategory(category string) ([]model.StockBase, error) {
	return s.stockBaseRepo.FindByCategory(category)
}
