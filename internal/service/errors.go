package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ledger errors carry the offending identifiers so the UI can surface the
// message as-is. Callers match them with errors.As / errors.Is.

var (
	// ErrMissingOutboundID is returned when a batch UPDATE or DELETE row
	// arrives without the row id.
	ErrMissingOutboundID = errors.New("outbound id is required for UPDATE and DELETE rows")
)

// InvalidDateError signals a date value that does not parse.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date value %q, expected YYYY-MM-DD", e.Value)
}

// DuplicateEntryError signals an inbound INSERT colliding with an existing
// lot for the same code and day.
type DuplicateEntryError struct {
	StockCode string
	Date      time.Time
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("inbound entry already exists for stock %q on %s",
		e.StockCode, e.Date.Format("2006-01-02"))
}

// NotFoundError signals a missing UPDATE/DELETE target.
type NotFoundError struct {
	Resource string // "inbound", "outbound", "stock base", "user"
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// LinkedInboundNotFoundError signals an outbound row referencing a lot that
// does not exist.
type LinkedInboundNotFoundError struct {
	StockCode string
	Date      time.Time
}

func (e *LinkedInboundNotFoundError) Error() string {
	return fmt.Sprintf("no inbound lot for stock %q on %s",
		e.StockCode, e.Date.Format("2006-01-02"))
}

// InsufficientStockError signals an outbound quantity exceeding what the
// linked lot still holds.
type InsufficientStockError struct {
	StockCode     string
	Available     int
	AvailableUnit string
	Requested     int
	RequestedUnit string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d %s remaining, %d %s requested",
		e.StockCode, e.Available, e.AvailableUnit, e.Requested, e.RequestedUnit)
}

// ImmutableCompletedError signals an UPDATE or DELETE against a COMPLETED
// outbound record.
type ImmutableCompletedError struct {
	ID uuid.UUID
}

func (e *ImmutableCompletedError) Error() string {
	return fmt.Sprintf("outbound %s is COMPLETED and can no longer be modified", e.ID)
}

// UnknownRowStatusError signals a batch row tagged with anything other than
// INSERT, UPDATE or DELETE.
type UnknownRowStatusError struct {
	Status string
}

func (e *UnknownRowStatusError) Error() string {
	return fmt.Sprintf("unknown row status %q", e.Status)
}
