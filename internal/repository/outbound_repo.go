package repository

import (
	"time"

	"go-stock-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutboundRepository interface {
	FindAll() ([]model.Outbound, error)
	FindByStockCode(code string) ([]model.Outbound, error)
	FindByDate(day time.Time) ([]model.Outbound, error)
	FindByID(id uuid.UUID) (*model.Outbound, error)
	FindByIDLocked(tx *gorm.DB, id uuid.UUID) (*model.Outbound, error)
	Create(tx *gorm.DB, entry *model.Outbound) error
	Save(tx *gorm.DB, entry *model.Outbound) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type outboundRepo struct {
	db *gorm.DB
}

func NewOutboundRepo(db *gorm.DB) OutboundRepository {
	return &outboundRepo{db}
}

func (r *outboundRepo) FindAll() ([]model.Outbound, error) {
	var entries []model.Outbound
	err := r.db.Order("outbound_date DESC, created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *outboundRepo) FindByStockCode(code string) ([]model.Outbound, error) {
	var entries []model.Outbound
	err := r.db.Where("stock_code = ?", code).Order("outbound_date DESC").Find(&entries).Error
	return entries, err
}

func (r *outboundRepo) FindByDate(day time.Time) ([]model.Outbound, error) {
	start, end := model.DayRange(day)
	var entries []model.Outbound
	err := r.db.Where("outbound_date BETWEEN ? AND ?", start, end).
		Order("stock_code ASC").Find(&entries).Error
	return entries, err
}

func (r *outboundRepo) FindByID(id uuid.UUID) (*model.Outbound, error) {
	var entry model.Outbound
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *outboundRepo) FindByIDLocked(tx *gorm.DB, id uuid.UUID) (*model.Outbound, error) {
	var entry model.Outbound
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *outboundRepo) Create(tx *gorm.DB, entry *model.Outbound) error {
	return tx.Create(entry).Error
}

func (r *outboundRepo) Save(tx *gorm.DB, entry *model.Outbound) error {
	return tx.Save(entry).Error
}

func (r *outboundRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Outbound{}, "id = ?", id).Error
}
