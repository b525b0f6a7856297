package model

import "time"

// Inbound is one received lot: quantity of a stock code that arrived on a
// date. The composite key (stock_code, inbound_date) identifies the lot and
// is also what outbound rows link against. Quantity holds the REMAINING
// amount — outbound issues decrement it in place and reversals add it back.
type Inbound struct {
	StockCode    string    `gorm:"type:varchar(50);primaryKey" json:"stock_code"`
	InboundDate  time.Time `gorm:"primaryKey" json:"inbound_date"`
	Quantity     int       `gorm:"not null" json:"quantity"` // never < 0
	Unit         string    `gorm:"type:varchar(20)" json:"unit"`
	MaxUsePeriod *int      `json:"max_use_period,omitempty"`
	Remark       string    `gorm:"type:text" json:"remark"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Inbound) TableName() string {
	return "inbound"
}

// InboundRow is one tagged change request inside an inbound batch save.
// Dates travel as YYYY-MM-DD strings from the grid.
type InboundRow struct {
	RowStatus    RowStatus `json:"row_status" validate:"required"`
	StockCode    string    `json:"stock_code" validate:"required"`
	InboundDate  string    `json:"inbound_date" validate:"required"`
	Quantity     int       `json:"quantity" validate:"gte=0"`
	Unit         string    `json:"unit"`
	MaxUsePeriod *int      `json:"max_use_period,omitempty"`
	Remark       string    `json:"remark"`
}

// DayRange expands a timestamp to the [start, end] bounds of its calendar
// day (00:00:00.000 through 23:59:59.999). The store persists timestamps,
// so equality lookups on a date must become range filters.
func DayRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}
