package repository

import (
	"sort"
	"time"

	"go-stock-ledger/internal/model"

	"gorm.io/gorm"
)

type ReportRepository interface {
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetStockLevels(lowThreshold int) ([]StockLevel, error)
}

// StockMovementData aggregates daily received/issued quantities for charts
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// StockLevel is the remaining quantity per stock code across all lots
type StockLevel struct {
	StockCode string `json:"stock_code"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	IsLow     bool   `json:"is_low"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

type dailySum struct {
	Date  string
	Total int
}

// GetStockMovement merges per-day sums from both ledgers. Only COMPLETED
// outbound rows count as issued; PENDING rows have not left the shelf yet
// on the non-batch path.
func (r *reportRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var received []dailySum
	err := r.db.Model(&model.Inbound{}).
		Select("TO_CHAR(inbound_date, 'YYYY-MM-DD') as date, COALESCE(SUM(quantity), 0) as total").
		Where("inbound_date BETWEEN ? AND ?", startDate, endDate).
		Group("TO_CHAR(inbound_date, 'YYYY-MM-DD')").
		Scan(&received).Error
	if err != nil {
		return nil, err
	}

	var issued []dailySum
	err = r.db.Model(&model.Outbound{}).
		Select("TO_CHAR(outbound_date, 'YYYY-MM-DD') as date, COALESCE(SUM(quantity), 0) as total").
		Where("status = ? AND outbound_date BETWEEN ? AND ?", model.OutboundCompleted, startDate, endDate).
		Group("TO_CHAR(outbound_date, 'YYYY-MM-DD')").
		Scan(&issued).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*StockMovementData)
	for _, row := range received {
		byDate[row.Date] = &StockMovementData{Date: row.Date, Inbound: row.Total}
	}
	for _, row := range issued {
		if existing, ok := byDate[row.Date]; ok {
			existing.Outbound = row.Total
		} else {
			byDate[row.Date] = &StockMovementData{Date: row.Date, Outbound: row.Total}
		}
	}

	results := make([]StockMovementData, 0, len(byDate))
	for _, row := range byDate {
		results = append(results, *row)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results, nil
}

func (r *reportRepo) GetStockLevels(lowThreshold int) ([]StockLevel, error) {
	var levels []StockLevel
	err := r.db.Model(&model.Inbound{}).
		Select("stock_code, COALESCE(SUM(quantity), 0) as quantity, MAX(unit) as unit").
		Group("stock_code").
		Order("stock_code ASC").
		Scan(&levels).Error
	if err != nil {
		return nil, err
	}

	for i := range levels {
		levels[i].IsLow = levels[i].Quantity < lowThreshold
	}
	return levels, nil
}
