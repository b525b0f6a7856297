package service

import (
	"errors"
	"fmt"
	"time"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboundService interface {
	SaveBatch(rows []model.OutboundRow, actorID, actorName string) ([]model.Outbound, error)
	Create(entry *model.Outbound, actorID string) error
	Update(id uuid.UUID, entry *model.Outbound, actorID string) (*model.Outbound, error)
	Delete(id uuid.UUID) error
	Complete(id uuid.UUID, actorID string) (*model.Outbound, error)
	GetAll() ([]model.Outbound, error)
	GetByStockCode(code string) ([]model.Outbound, error)
	GetByDate(date string) ([]model.Outbound, error)
	GetByID(id uuid.UUID) (*model.Outbound, error)
}

type outboundService struct {
	outboundRepo repository.OutboundRepository
	inboundRepo  repository.InboundRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewOutboundService(outboundRepo repository.OutboundRepository, inboundRepo repository.InboundRepository, db *gorm.DB, hub *ws.Hub) OutboundService {
	return &outboundService{
		outboundRepo: outboundRepo,
		inboundRepo:  inboundRepo,
		db:           db,
		wsHub:        hub,
	}
}

// SaveBatch reconciles a grid submission of tagged outbound rows against the
// inbound ledger inside one transaction. Every consumed quantity is taken
// from the linked lot's remaining quantity; reversals put it back. Any
// failure rolls back the whole batch.
//
// Rows apply strictly in order — a later row may depend on the quantity an
// earlier row just freed or consumed on the same lot.
func (s *outboundService) SaveBatch(rows []model.OutboundRow, actorID, actorName string) ([]model.Outbound, error) {
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

	// 2. Reconcile sequentially inside one transaction
	results := make([]model.Outbound, 0, len(rows))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			applied, err := s.applyRow(tx, row, actorID)
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

	// 3. Broadcast after commit
	go s.wsHub.Publish(ws.Event{
		Type:   ws.EventLedgerUpdate,
		Ledger: "outbound",
		Count:  len(results),
		Actor:  ws.Actor{ID: actorID, Name: actorName},
	})

	return results, nil
}

func (s *outboundService) applyRow(tx *gorm.DB, row model.OutboundRow, actorID string) (*model.Outbound, error) {
	switch row.RowStatus {
	case model.RowInsert:
		return s.applyInsert(tx, row, actorID)
	case model.RowUpdate:
		return s.applyUpdate(tx, row, actorID)
	case model.RowDelete:
		return s.applyDelete(tx, row)
	}
	return nil, &UnknownRowStatusError{Status: string(row.RowStatus)}
}

func (s *outboundService) applyInsert(tx *gorm.DB, row model.OutboundRow, actorID string) (*model.Outbound, error) {
	outboundDay, err := parseDate(row.OutboundDate)
	if err != nil {
		return nil, err
	}
	inboundDay, err := parseDate(row.InboundDate)
	if err != nil {
		return nil, err
	}

	// 1. Lock the linked lot and check the remaining quantity
	lot, err := s.consumeFromLot(tx, row.StockCode, inboundDay, row.Quantity, row.Unit)
	if err != nil {
		return nil, err
	}

	// 2. Freshly inserted batch rows complete immediately — there is no
	// PENDING window on this path.
	entry := &model.Outbound{
		StockCode:    row.StockCode,
		InboundDate:  lot.InboundDate,
		OutboundDate: outboundDay,
		Quantity:     row.Quantity,
		Unit:         row.Unit,
		Remark:       row.Remark,
		Status:       model.OutboundCompleted,
	}
	entry.CreatedBy = actorID
	entry.UpdatedBy = actorID
	if err := s.outboundRepo.Create(tx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *outboundService) applyUpdate(tx *gorm.DB, row model.OutboundRow, actorID string) (*model.Outbound, error) {
	if row.ID == nil {
		return nil, ErrMissingOutboundID
	}
	outboundDay, err := parseDate(row.OutboundDate)
	if err != nil {
		return nil, err
	}
	inboundDay, err := parseDate(row.InboundDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.outboundRepo.FindByIDLocked(tx, *row.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "outbound", Key: row.ID.String()}
	}
	if err != nil {
		return nil, err
	}
	if !existing.Mutable() {
		return nil, &ImmutableCompletedError{ID: existing.ID}
	}

	// 1. Reverse the old consumption on the previously linked lot. The lot
	// may have been deleted or re-dated since; a missing lot is not an
	// error here (matches the source).
	if err := s.restoreToLot(tx, existing.StockCode, existing.InboundDate, existing.Quantity); err != nil {
		return nil, err
	}

	// 2. Consume from the newly linked lot
	lot, err := s.consumeFromLot(tx, row.StockCode, inboundDay, row.Quantity, row.Unit)
	if err != nil {
		return nil, err
	}

	// 3. Overwrite and force completion
	existing.StockCode = row.StockCode
	existing.InboundDate = lot.InboundDate
	existing.OutboundDate = outboundDay
	existing.Quantity = row.Quantity
	existing.Unit = row.Unit
	existing.Remark = row.Remark
	existing.Status = model.OutboundCompleted
	existing.UpdatedBy = actorID
	if err := s.outboundRepo.Save(tx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *outboundService) applyDelete(tx *gorm.DB, row model.OutboundRow) (*model.Outbound, error) {
	if row.ID == nil {
		return nil, ErrMissingOutboundID
	}
	// The date plays no part in a delete, but a malformed row is still a
	// malformed row.
	if _, err := parseDate(row.OutboundDate); err != nil {
		return nil, err
	}

	existing, err := s.outboundRepo.FindByIDLocked(tx, *row.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "outbound", Key: row.ID.String()}
	}
	if err != nil {
		return nil, err
	}
	if !existing.Mutable() {
		return nil, &ImmutableCompletedError{ID: existing.ID}
	}

	// Put the issued quantity back on the linked lot, then drop the row.
	if err := s.restoreToLot(tx, existing.StockCode, existing.InboundDate, existing.Quantity); err != nil {
		return nil, err
	}

	snapshot := *existing
	if err := s.outboundRepo.Delete(tx, existing.ID); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// consumeFromLot locks the lot for (code, day), verifies it can cover the
// requested quantity and decrements it. The lock holds until the enclosing
// transaction ends, so concurrent batches serialize per lot.
func (s *outboundService) consumeFromLot(tx *gorm.DB, code string, day time.Time, quantity int, unit string) (*model.Inbound, error) {
	lot, err := s.inboundRepo.FindForDayLocked(tx, code, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &LinkedInboundNotFoundError{StockCode: code, Date: day}
	}
	if err != nil {
		return nil, err
	}
	if lot.Quantity < quantity {
		return nil, &InsufficientStockError{
			StockCode:     code,
			Available:     lot.Quantity,
			AvailableUnit: lot.Unit,
			Requested:     quantity,
			RequestedUnit: unit,
		}
	}
	lot.Quantity -= quantity
	if err := s.inboundRepo.Save(tx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// restoreToLot adds a reversed quantity back onto a lot. A vanished lot is
// tolerated: the reversal has nowhere to go and the quantity is dropped.
func (s *outboundService) restoreToLot(tx *gorm.DB, code string, day time.Time, quantity int) error {
	lot, err := s.inboundRepo.FindForDayLocked(tx, code, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	lot.Quantity += quantity
	return s.inboundRepo.Save(tx, lot)
}

// Create stores a single outbound row without touching the inbound ledger.
// It stays PENDING until Complete is called. This path intentionally skips
// reconciliation, mirroring the non-batch endpoints of the source system.
func (s *outboundService) Create(entry *model.Outbound, actorID string) error {
	entry.Status = model.OutboundPending
	entry.CreatedBy = actorID
	entry.UpdatedBy = actorID
	return s.outboundRepo.Create(s.db, entry)
}

// Update overwrites a single outbound row by id, unconditionally and without
// reconciliation.
func (s *outboundService) Update(id uuid.UUID, entry *model.Outbound, actorID string) (*model.Outbound, error) {
	existing, err := s.outboundRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "outbound", Key: id.String()}
	}
	if err != nil {
		return nil, err
	}

	existing.StockCode = entry.StockCode
	existing.InboundDate = entry.InboundDate
	existing.OutboundDate = entry.OutboundDate
	existing.Quantity = entry.Quantity
	existing.Unit = entry.Unit
	existing.Remark = entry.Remark
	existing.UpdatedBy = actorID
	if err := s.outboundRepo.Save(s.db, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a single outbound row by id, unconditionally and without
// reversing its quantity.
func (s *outboundService) Delete(id uuid.UUID) error {
	return s.outboundRepo.Delete(s.db, id)
}

// Complete flips a PENDING row to COMPLETED. Completing an already
// COMPLETED row is a no-op; the row comes back unchanged.
func (s *outboundService) Complete(id uuid.UUID, actorID string) (*model.Outbound, error) {
	entry, err := s.outboundRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "outbound", Key: id.String()}
	}
	if err != nil {
		return nil, err
	}
	if entry.Status == model.OutboundCompleted {
		return entry, nil
	}

	entry.Status = model.OutboundCompleted
	entry.UpdatedBy = actorID
	if err := s.outboundRepo.Save(s.db, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *outboundService) GetAll() ([]model.Outbound, error) {
	return s.outboundRepo.FindAll()
}

func (s *outboundService) GetByStockCode(code string) ([]model.Outbound, error) {
	return s.outboundRepo.FindByStockCode(code)
}

func (s *outboundService) GetByDate(date string) ([]model.Outbound, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.outboundRepo.FindByDate(day)
}

func (s *outboundService) GetByID(id uuid.UUID) (*model.Outbound, error) {
	entry, err := s.outboundRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "outbound", Key: id.String()}
	}
	return entry, err
}
