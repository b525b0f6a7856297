package service

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These tests exercise the full reconciliation path against a real Postgres
// instance. Set TEST_DATABASE_URL to run them, e.g.
//
//	TEST_DATABASE_URL="host=localhost user=postgres password=postgres dbname=ledger_test port=5432 sslmode=disable" go test ./internal/service/
func setupLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("set TEST_DATABASE_URL to run database-backed tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Inbound{}, &model.Outbound{}))
	require.NoError(t, db.Exec("TRUNCATE inbound, outbound").Error)

	return db
}

func newLedgerServices(db *gorm.DB) (InboundService, OutboundService, repository.InboundRepository) {
	hub := ws.NewHub()
	go hub.Run()

	inboundRepo := repository.NewInboundRepo(db)
	outboundRepo := repository.NewOutboundRepo(db)
	return NewInboundService(inboundRepo, db, hub),
		NewOutboundService(outboundRepo, inboundRepo, db, hub),
		inboundRepo
}

func seedLot(t *testing.T, db *gorm.DB, code, date string, quantity int, unit string) {
	t.Helper()
	day, err := parseDate(date)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Inbound{
		StockCode:   code,
		InboundDate: day,
		Quantity:    quantity,
		Unit:        unit,
	}).Error)
}

func lotQuantity(t *testing.T, repo repository.InboundRepository, db *gorm.DB, code, date string) int {
	t.Helper()
	day, err := parseDate(date)
	require.NoError(t, err)
	lot, err := repo.FindForDay(db, code, day)
	require.NoError(t, err)
	return lot.Quantity
}

func TestInboundSaveBatch(t *testing.T) {
	db := setupLedgerDB(t)
	inboundSvc, _, inboundRepo := newLedgerServices(db)

	t.Run("INSERT creates a lot with a day-normalized date", func(t *testing.T) {
		results, err := inboundSvc.SaveBatch([]model.InboundRow{
			{RowStatus: model.RowInsert, StockCode: "FLOUR-001", InboundDate: "2024-03-15", Quantity: 100, Unit: "KG"},
		}, "tester", "Tester")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 100, results[0].Quantity)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), results[0].InboundDate.UTC())
	})

	t.Run("INSERT for the same code and day is rejected", func(t *testing.T) {
		_, err := inboundSvc.SaveBatch([]model.InboundRow{
			{RowStatus: model.RowInsert, StockCode: "FLOUR-001", InboundDate: "2024-03-15", Quantity: 50, Unit: "KG"},
		}, "tester", "Tester")

		var dup *DuplicateEntryError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "FLOUR-001", dup.StockCode)

		// Original lot untouched
		assert.Equal(t, 100, lotQuantity(t, inboundRepo, db, "FLOUR-001", "2024-03-15"))
	})

	t.Run("UPDATE overwrites the existing lot", func(t *testing.T) {
		results, err := inboundSvc.SaveBatch([]model.InboundRow{
			{RowStatus: model.RowUpdate, StockCode: "FLOUR-001", InboundDate: "2024-03-15", Quantity: 120, Unit: "KG", Remark: "recount"},
		}, "tester", "Tester")
		require.NoError(t, err)
		assert.Equal(t, 120, results[0].Quantity)
		assert.Equal(t, "recount", results[0].Remark)
	})

	t.Run("UPDATE on a missing lot fails the whole batch", func(t *testing.T) {
		_, err := inboundSvc.SaveBatch([]model.InboundRow{
			{RowStatus: model.RowInsert, StockCode: "SUGAR-002", InboundDate: "2024-03-16", Quantity: 10, Unit: "KG"},
			{RowStatus: model.RowUpdate, StockCode: "GHOST-999", InboundDate: "2024-03-16", Quantity: 5, Unit: "KG"},
		}, "tester", "Tester")

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)

		// First row rolled back with the failing one
		_, err = inboundRepo.FindForDay(db, "SUGAR-002", mustDay(t, "2024-03-16"))
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("DELETE removes the lot and returns its snapshot", func(t *testing.T) {
		results, err := inboundSvc.SaveBatch([]model.InboundRow{
			{RowStatus: model.RowDelete, StockCode: "FLOUR-001", InboundDate: "2024-03-15"},
		}, "tester", "Tester")
		require.NoError(t, err)
		assert.Equal(t, 120, results[0].Quantity)

		_, err = inboundRepo.FindForDay(db, "FLOUR-001", mustDay(t, "2024-03-15"))
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown row status rejects the batch before any write", func(t *testing.T) {
		_, err := inboundSvc.SaveBatch([]model.InboundRow{
			{RowStatus: "UPSERT", StockCode: "FLOUR-001", InboundDate: "2024-03-15", Quantity: 1},
		}, "tester", "Tester")

		var unknown *UnknownRowStatusError
		require.ErrorAs(t, err, &unknown)
	})
}

func TestOutboundSaveBatchReconciliation(t *testing.T) {
	db := setupLedgerDB(t)
	_, outboundSvc, inboundRepo := newLedgerServices(db)

	t.Run("INSERT consumes from the lot and completes immediately", func(t *testing.T) {
		seedLot(t, db, "FLOUR-001", "2024-03-15", 100, "KG")

		results, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowInsert, StockCode: "FLOUR-001", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 30, Unit: "KG"},
		}, "tester", "Tester")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, model.OutboundCompleted, results[0].Status)
		assert.Equal(t, 70, lotQuantity(t, inboundRepo, db, "FLOUR-001", "2024-03-15"))
	})

	t.Run("INSERT referencing a missing lot fails", func(t *testing.T) {
		_, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowInsert, StockCode: "GHOST-999", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 1},
		}, "tester", "Tester")

		var missing *LinkedInboundNotFoundError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "GHOST-999", missing.StockCode)
	})

	t.Run("insufficient stock boundary", func(t *testing.T) {
		seedLot(t, db, "YEAST-003", "2024-03-15", 5, "EA")

		// 6 of 5 fails
		_, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowInsert, StockCode: "YEAST-003", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 6, Unit: "EA"},
		}, "tester", "Tester")
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 5, insufficient.Available)
		assert.Equal(t, 6, insufficient.Requested)

		// exactly 5 of 5 drains the lot to zero
		_, err = outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowInsert, StockCode: "YEAST-003", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 5, Unit: "EA"},
		}, "tester", "Tester")
		require.NoError(t, err)
		assert.Equal(t, 0, lotQuantity(t, inboundRepo, db, "YEAST-003", "2024-03-15"))
	})

	t.Run("one failing row rolls back the whole batch", func(t *testing.T) {
		seedLot(t, db, "SALT-004", "2024-03-15", 50, "KG")

		_, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowInsert, StockCode: "SALT-004", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 20, Unit: "KG"},
			{RowStatus: model.RowInsert, StockCode: "SALT-004", InboundDate: "2024-03-15", OutboundDate: "2024-03-21", Quantity: 40, Unit: "KG"},
		}, "tester", "Tester")

		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)

		// First row's consumption reverted with the rollback
		assert.Equal(t, 50, lotQuantity(t, inboundRepo, db, "SALT-004", "2024-03-15"))
		entries, err := outboundSvc.GetByStockCode("SALT-004")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rows apply in order within a batch", func(t *testing.T) {
		seedLot(t, db, "OIL-005", "2024-03-15", 30, "L")

		results, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowInsert, StockCode: "OIL-005", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 10, Unit: "L"},
			{RowStatus: model.RowInsert, StockCode: "OIL-005", InboundDate: "2024-03-15", OutboundDate: "2024-03-21", Quantity: 20, Unit: "L"},
		}, "tester", "Tester")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 0, lotQuantity(t, inboundRepo, db, "OIL-005", "2024-03-15"))
	})
}

func TestOutboundUpdateReversal(t *testing.T) {
	db := setupLedgerDB(t)
	_, outboundSvc, inboundRepo := newLedgerServices(db)

	t.Run("UPDATE reverses the old quantity before consuming the new", func(t *testing.T) {
		// Lot sits at 40 with a PENDING issue of 10 already drawn from it.
		seedLot(t, db, "FLOUR-001", "2024-03-15", 40, "KG")
		pending := &model.Outbound{
			StockCode:    "FLOUR-001",
			InboundDate:  mustDay(t, "2024-03-15"),
			OutboundDate: mustDay(t, "2024-03-20"),
			Quantity:     10,
			Unit:         "KG",
			Status:       model.OutboundPending,
		}
		require.NoError(t, db.Create(pending).Error)

		results, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowUpdate, ID: &pending.ID, StockCode: "FLOUR-001", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 25, Unit: "KG"},
		}, "tester", "Tester")
		require.NoError(t, err)

		// 40 + 10 reversed - 25 consumed = 25
		assert.Equal(t, 25, lotQuantity(t, inboundRepo, db, "FLOUR-001", "2024-03-15"))
		assert.Equal(t, 25, results[0].Quantity)
		assert.Equal(t, model.OutboundCompleted, results[0].Status)
	})

	t.Run("UPDATE without an id is rejected", func(t *testing.T) {
		_, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowUpdate, StockCode: "FLOUR-001", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 5},
		}, "tester", "Tester")
		assert.ErrorIs(t, err, ErrMissingOutboundID)
	})

	t.Run("UPDATE on an unknown id is not found", func(t *testing.T) {
		missing := uuid.New()
		_, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowUpdate, ID: &missing, StockCode: "FLOUR-001", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 5},
		}, "tester", "Tester")

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestOutboundDeleteReversal(t *testing.T) {
	db := setupLedgerDB(t)
	_, outboundSvc, inboundRepo := newLedgerServices(db)

	t.Run("DELETE of a pending issue restores the lot", func(t *testing.T) {
		seedLot(t, db, "FLOUR-001", "2024-03-15", 70, "KG")
		pending := &model.Outbound{
			StockCode:    "FLOUR-001",
			InboundDate:  mustDay(t, "2024-03-15"),
			OutboundDate: mustDay(t, "2024-03-20"),
			Quantity:     30,
			Unit:         "KG",
			Status:       model.OutboundPending,
		}
		require.NoError(t, db.Create(pending).Error)

		results, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowDelete, ID: &pending.ID, StockCode: "FLOUR-001", InboundDate: "2024-03-15", OutboundDate: "2024-03-20"},
		}, "tester", "Tester")
		require.NoError(t, err)
		assert.Equal(t, 30, results[0].Quantity)

		assert.Equal(t, 100, lotQuantity(t, inboundRepo, db, "FLOUR-001", "2024-03-15"))
		_, err = outboundSvc.GetByID(pending.ID)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("DELETE with a malformed date is rejected before any write", func(t *testing.T) {
		seedLot(t, db, "SUGAR-002", "2024-03-15", 20, "KG")
		pending := &model.Outbound{
			StockCode:    "SUGAR-002",
			InboundDate:  mustDay(t, "2024-03-15"),
			OutboundDate: mustDay(t, "2024-03-20"),
			Quantity:     5,
			Unit:         "KG",
			Status:       model.OutboundPending,
		}
		require.NoError(t, db.Create(pending).Error)

		_, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowDelete, ID: &pending.ID, StockCode: "SUGAR-002", InboundDate: "2024-03-15", OutboundDate: "not-a-date"},
		}, "tester", "Tester")

		var invalidDate *InvalidDateError
		require.ErrorAs(t, err, &invalidDate)

		// Row and lot untouched
		assert.Equal(t, 20, lotQuantity(t, inboundRepo, db, "SUGAR-002", "2024-03-15"))
		_, err = outboundSvc.GetByID(pending.ID)
		require.NoError(t, err)
	})
}

func TestCompletedRowsAreImmutable(t *testing.T) {
	db := setupLedgerDB(t)
	_, outboundSvc, inboundRepo := newLedgerServices(db)

	seedLot(t, db, "FLOUR-001", "2024-03-15", 100, "KG")

	results, err := outboundSvc.SaveBatch([]model.OutboundRow{
		{RowStatus: model.RowInsert, StockCode: "FLOUR-001", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 30, Unit: "KG"},
	}, "tester", "Tester")
	require.NoError(t, err)
	completedID := results[0].ID

	t.Run("batch UPDATE is refused", func(t *testing.T) {
		_, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowUpdate, ID: &completedID, StockCode: "FLOUR-001", InboundDate: "2024-03-15", OutboundDate: "2024-03-20", Quantity: 10, Unit: "KG"},
		}, "tester", "Tester")

		var immutable *ImmutableCompletedError
		require.ErrorAs(t, err, &immutable)
		assert.Equal(t, completedID, immutable.ID)
	})

	t.Run("batch DELETE is refused and the lot stays put", func(t *testing.T) {
		_, err := outboundSvc.SaveBatch([]model.OutboundRow{
			{RowStatus: model.RowDelete, ID: &completedID, StockCode: "FLOUR-001", InboundDate: "2024-03-15", OutboundDate: "2024-03-20"},
		}, "tester", "Tester")

		var immutable *ImmutableCompletedError
		require.ErrorAs(t, err, &immutable)
		assert.Equal(t, 70, lotQuantity(t, inboundRepo, db, "FLOUR-001", "2024-03-15"))
	})
}

func TestOutboundSingleRecordPath(t *testing.T) {
	db := setupLedgerDB(t)
	_, outboundSvc, inboundRepo := newLedgerServices(db)

	seedLot(t, db, "FLOUR-001", "2024-03-15", 100, "KG")

	t.Run("Create stores a PENDING row without touching the lot", func(t *testing.T) {
		entry := &model.Outbound{
			StockCode:    "FLOUR-001",
			InboundDate:  mustDay(t, "2024-03-15"),
			OutboundDate: mustDay(t, "2024-03-20"),
			Quantity:     10,
			Unit:         "KG",
		}
		require.NoError(t, outboundSvc.Create(entry, "tester"))
		assert.Equal(t, model.OutboundPending, entry.Status)
		assert.Equal(t, 100, lotQuantity(t, inboundRepo, db, "FLOUR-001", "2024-03-15"))
	})

	t.Run("Complete flips PENDING to COMPLETED and is idempotent", func(t *testing.T) {
		entry := &model.Outbound{
			StockCode:    "FLOUR-001",
			InboundDate:  mustDay(t, "2024-03-15"),
			OutboundDate: mustDay(t, "2024-03-21"),
			Quantity:     5,
			Unit:         "KG",
		}
		require.NoError(t, outboundSvc.Create(entry, "tester"))

		completed, err := outboundSvc.Complete(entry.ID, "tester")
		require.NoError(t, err)
		assert.Equal(t, model.OutboundCompleted, completed.Status)

		again, err := outboundSvc.Complete(entry.ID, "tester")
		require.NoError(t, err)
		assert.Equal(t, model.OutboundCompleted, again.Status)
	})
}

func mustDay(t *testing.T, date string) time.Time {
	t.Helper()
	day, err := parseDate(date)
	require.NoError(t, err)
	return day
}

// queryRecorder keeps the last SQL statement GORM ran so tests can assert
// on the query shape.
type queryRecorder struct {
	logger.Interface
	last string
}

func newQueryRecorder() *queryRecorder {
	return &queryRecorder{Interface: logger.Default.LogMode(logger.Silent)}
}

func (r *queryRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	r.last, _ = fc()
}

func TestLockedFindersEmitRowLocks(t *testing.T) {
	db := setupLedgerDB(t)

	seedLot(t, db, "FLOUR-001", "2024-03-15", 100, "KG")
	entry := &model.Outbound{
		StockCode:    "FLOUR-001",
		InboundDate:  mustDay(t, "2024-03-15"),
		OutboundDate: mustDay(t, "2024-03-20"),
		Quantity:     10,
		Unit:         "KG",
		Status:       model.OutboundPending,
	}
	require.NoError(t, db.Create(entry).Error)

	rec := newQueryRecorder()
	session := db.Session(&gorm.Session{Logger: rec})
	inboundRepo := repository.NewInboundRepo(db)
	outboundRepo := repository.NewOutboundRepo(db)

	t.Run("inbound day lookup locks the lot row", func(t *testing.T) {
		lot, err := inboundRepo.FindForDayLocked(session, "FLOUR-001", mustDay(t, "2024-03-15"))
		require.NoError(t, err)
		assert.Equal(t, 100, lot.Quantity)
		assert.Contains(t, rec.last, "FOR UPDATE")
	})

	t.Run("outbound id lookup locks the issue row", func(t *testing.T) {
		found, err := outboundRepo.FindByIDLocked(session, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, found.ID)
		assert.Contains(t, rec.last, "FOR UPDATE")
	})
}
