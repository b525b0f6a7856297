package service

import (
	"errors"
	"fmt"
	"time"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/validator"

	"gorm.io/gorm"
)

type InboundService interface {
	SaveBatch(rows []model.InboundRow, actorID, actorName string) ([]model.Inbound, error)
	GetAll() ([]model.Inbound, error)
	GetByStockCode(code string) ([]model.Inbound, error)
	GetByDate(date string) ([]model.Inbound, error)
	GetOne(code, date string) (*model.Inbound, error)
}

type inboundService struct {
	inboundRepo repository.InboundRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewInboundService(inboundRepo repository.InboundRepository, db *gorm.DB, hub *ws.Hub) InboundService {
	return &inboundService{
		inboundRepo: inboundRepo,
		db:          db,
		wsHub:       hub,
	}
}

// SaveBatch applies a grid submission of tagged inbound rows in one
// transaction: all rows land or none do. Results come back in request
// order; DELETE rows carry the snapshot of what was removed.
func (s *inboundService) SaveBatch(rows []model.InboundRow, actorID, actorName string) ([]model.Inbound, error) {
	// 1. Validate row shapes up front
	for i, row := range rows {
		if errs := validator.ValidateStruct(&row); len(errs) > 0 {
			firstErr := errs[0]
			return nil, fmt.Errorf("row %d: field '%s' failed on tag '%s'", i, firstErr.FailedField, firstErr.Tag)
		}
		if !row.RowStatus.Valid() {
			return nil, &UnknownRowStatusError{Status: string(row.RowStatus)}
		}
	}

	// 2. Apply sequentially inside a single transaction
	results := make([]model.Inbound, 0, len(rows))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			applied, err := s.applyRow(tx, row)
			if err != nil {
				return err
			}
			results = append(results, *applied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Broadcast after commit so clients never see rolled-back rows
	go s.wsHub.Publish(ws.Event{
		Type:   ws.EventLedgerUpdate,
		Ledger: "inbound",
		Count:  len(results),
		Actor:  ws.Actor{ID: actorID, Name: actorName},
	})

	return results, nil
}

func (s *inboundService) applyRow(tx *gorm.DB, row model.InboundRow) (*model.Inbound, error) {
	day, err := parseDate(row.InboundDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.inboundRepo.FindForDay(tx, row.StockCode, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	switch row.RowStatus {
	case model.RowInsert:
		if existing != nil {
			return nil, &DuplicateEntryError{StockCode: row.StockCode, Date: day}
		}
		entry := &model.Inbound{
			StockCode:    row.StockCode,
			InboundDate:  day,
			Quantity:     row.Quantity,
			Unit:         row.Unit,
			MaxUsePeriod: row.MaxUsePeriod,
			Remark:       row.Remark,
		}
		if err := s.inboundRepo.Create(tx, entry); err != nil {
			return nil, err
		}
		return entry, nil

	case model.RowUpdate:
		if existing == nil {
			return nil, &NotFoundError{Resource: "inbound", Key: inboundKey(row.StockCode, day)}
		}
		existing.Quantity = row.Quantity
		existing.Unit = row.Unit
		existing.MaxUsePeriod = row.MaxUsePeriod
		existing.Remark = row.Remark
		if err := s.inboundRepo.Save(tx, existing); err != nil {
			return nil, err
		}
		return existing, nil

	case model.RowDelete:
		if existing == nil {
			return nil, &NotFoundError{Resource: "inbound", Key: inboundKey(row.StockCode, day)}
		}
		snapshot := *existing
		if err := s.inboundRepo.DeleteByKey(tx, existing.StockCode, existing.InboundDate); err != nil {
			return nil, err
		}
		return &snapshot, nil
	}

	return nil, &UnknownRowStatusError{Status: string(row.RowStatus)}
}

func (s *inboundService) GetAll() ([]model.Inbound, error) {
	return s.inboundRepo.FindAll()
}

func (s *inboundService) GetByStockCode(code string) ([]model.Inbound, error) {
	return s.inboundRepo.FindByStockCode(code)
}

func (s *inboundService) GetByDate(date string) ([]model.Inbound, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.inboundRepo.FindByDate(day)
}

func (s *inboundService) GetOne(code, date string) (*model.Inbound, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	entry, err := s.inboundRepo.FindForDay(s.db, code, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "inbound", Key: inboundKey(code, day)}
	}
	return entry, err
}

func inboundKey(code string, day time.Time) string {
	return fmt.Sprintf("%s@%s", code, day.Format("2006-01-02"))
}
