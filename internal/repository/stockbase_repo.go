package repository

import (
	"go-stock-ledger/internal/model"

	"gorm.io/gorm"
)

type StockBaseRepository interface {
	FindAll() ([]model.StockBase, error)
	FindByCode(code string) (*model.StockBase, error)
	FindByCategory(category string) ([]model.StockBase, error)
	Create(entry *model.StockBase) error
	Update(entry *model.StockBase) error
	Delete(code string) error
}

type stockBaseRepo struct {
	db *gorm.DB
}

func NewStockBaseRepo(db *gorm.DB) StockBaseRepository {
	return &stockBaseRepo{db}
}

func (r *stockBaseRepo) FindAll() ([]model.StockBase, error) {
	var entries []model.StockBase
	err := r.db.Order("code ASC").Find(&entries).Error
	return entries, err
}

func (r *stockBaseRepo) FindByCode(code string) (*model.StockBase, error) {
	var entry model.StockBase
	if err := r.db.First(&entry, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *stockBaseRepo) FindByCategory(category string) ([]model.StockBase, error) {
	var entries []model.StockBase
	err := r.db.Where("category = ?", category).Order("code ASC").Find(&entries).Error
	return entries, err
}

func (r *stockBaseRepo) Create(entry *model.StockBase) error {
	return r.db.Create(entry).Error
}

func (r *stockBaseRepo) Update(entry *model.StockBase) error {
	return r.db.Save(entry).Error
}

func (r *stockBaseRepo) Delete(code string) error {
	return r.db.Delete(&model.StockBase{}, "code = ?", code).Error
}
