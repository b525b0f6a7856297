package model

import (
	"time"

	"github.com/google/uuid"
)

// OutboundStatus is the completion state of an issue. Once COMPLETED the row
// is frozen: no update or delete may touch it.
type OutboundStatus string

const (
	OutboundPending   OutboundStatus = "PENDING"
	OutboundCompleted OutboundStatus = "COMPLETED"
)

// Outbound is one issued quantity drawn from a specific inbound lot. The
// linkage to the lot is the natural key (stock_code, inbound_date), not a
// surrogate foreign key — editing a lot's date orphans its issues. Kept
// as-is deliberately; see DESIGN.md.
type Outbound struct {
	BaseModel
	StockCode    string         `gorm:"type:varchar(50);not null;index" json:"stock_code"`
	InboundDate  time.Time      `gorm:"not null" json:"inbound_date"`
	OutboundDate time.Time      `gorm:"not null;index" json:"outbound_date"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	Unit         string         `gorm:"type:varchar(20)" json:"unit"`
	Remark       string         `gorm:"type:text" json:"remark"`
	Status       OutboundStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
}

func (Outbound) TableName() string {
	return "outbound"
}

// Mutable reports whether the row may still be updated or deleted.
func (o *Outbound) Mutable() bool {
	return o.Status != OutboundCompleted
}

// OutboundRow is one tagged change request inside an outbound batch save.
// ID is required for UPDATE and DELETE; ignored for INSERT.
type OutboundRow struct {
	RowStatus    RowStatus  `json:"row_status" validate:"required"`
	ID           *uuid.UUID `json:"id,omitempty"`
	StockCode    string     `json:"stock_code"`
	InboundDate  string     `json:"inbound_date"`
	OutboundDate string     `json:"outbound_date"`
	Quantity     int        `json:"quantity" validate:"gte=0"`
	Unit         string     `json:"unit"`
	Remark       string     `json:"remark"`
}
