package repository

import (
	"time"

	"go-stock-ledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InboundRepository reads and mutates inbound lots. Mutators and the
// day-range lookups take a *gorm.DB so callers can run them inside a
// transaction block; read-only listing runs on the pooled handle.
type InboundRepository interface {
	FindAll() ([]model.Inbound, error)
	FindByStockCode(code string) ([]model.Inbound, error)
	FindByDate(day time.Time) ([]model.Inbound, error)
	FindForDay(tx *gorm.DB, code string, day time.Time) (*model.Inbound, error)
	FindForDayLocked(tx *gorm.DB, code string, day time.Time) (*model.Inbound, error)
	Create(tx *gorm.DB, entry *model.Inbound) error
	Save(tx *gorm.DB, entry *model.Inbound) error
	DeleteByKey(tx *gorm.DB, code string, inboundDate time.Time) error
}

type inboundRepo struct {
	db *gorm.DB
}

func NewInboundRepo(db *gorm.DB) InboundRepository {
	return &inboundRepo{db}
}

func (r *inboundRepo) FindAll() ([]model.Inbound, error) {
	var entries []model.Inbound
	err := r.db.Order("inbound_date DESC, stock_code ASC").Find(&entries).Error
	return entries, err
}

func (r *inboundRepo) FindByStockCode(code string) ([]model.Inbound, error) {
	var entries []model.Inbound
	err := r.db.Where("stock_code = ?", code).Order("inbound_date DESC").Find(&entries).Error
	return entries, err
}

func (r *inboundRepo) FindByDate(day time.Time) ([]model.Inbound, error) {
	start, end := model.DayRange(day)
	var entries []model.Inbound
	err := r.db.Where("inbound_date BETWEEN ? AND ?", start, end).
		Order("stock_code ASC").Find(&entries).Error
	return entries, err
}

// FindForDay looks up the single lot for a stock code on a calendar day.
// The store keeps timestamps, so the date filter is a day-wide range.
func (r *inboundRepo) FindForDay(tx *gorm.DB, code string, day time.Time) (*model.Inbound, error) {
	start, end := model.DayRange(day)
	var entry model.Inbound
	err := tx.Where("stock_code = ? AND inbound_date BETWEEN ? AND ?", code, start, end).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindForDayLocked is FindForDay with a FOR UPDATE row lock, for
// read-modify-write of the remaining quantity inside the reconciliation
// transaction.
func (r *inboundRepo) FindForDayLocked(tx *gorm.DB, code string, day time.Time) (*model.Inbound, error) {
	start, end := model.DayRange(day)
	var entry model.Inbound
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("stock_code = ? AND inbound_date BETWEEN ? AND ?", code, start, end).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *inboundRepo) Create(tx *gorm.DB, entry *model.Inbound) error {
	return tx.Create(entry).Error
}

func (r *inboundRepo) Save(tx *gorm.DB, entry *model.Inbound) error {
	return tx.Save(entry).Error
}

func (r *inboundRepo) DeleteByKey(tx *gorm.DB, code string, inboundDate time.Time) error {
	return tx.Delete(&model.Inbound{}, "stock_code = ? AND inbound_date = ?", code, inboundDate).Error
}
