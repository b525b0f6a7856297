package model

import "time"

// StockBase is the item catalog ("stock base code"). The ledger only reads
// it; lifecycle is managed through its own CRUD endpoints.
type StockBase struct {
	Code         string    `gorm:"type:varchar(50);primaryKey" json:"code" validate:"required"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category     string    `gorm:"type:varchar(100)" json:"category"`
	Unit         string    `gorm:"type:varchar(20)" json:"unit" validate:"required"`
	MaxUsePeriod *int      `json:"max_use_period,omitempty"` // days, optional
	Remark       string    `gorm:"type:text" json:"remark"`
	IsAlert      bool      `gorm:"default:false" json:"is_alert"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
