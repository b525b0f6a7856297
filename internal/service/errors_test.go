package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("insufficient stock names both quantities and units", func(t *testing.T) {
		err := &InsufficientStockError{
			StockCode:     "FLOUR-001",
			Available:     5,
			AvailableUnit: "EA",
			Requested:     6,
			RequestedUnit: "EA",
		}
		assert.Equal(t, `insufficient stock for "FLOUR-001": 5 EA remaining, 6 EA requested`, err.Error())
	})

	t.Run("duplicate entry names the code and day", func(t *testing.T) {
		err := &DuplicateEntryError{StockCode: "FLOUR-001", Date: day}
		assert.Equal(t, `inbound entry already exists for stock "FLOUR-001" on 2024-03-15`, err.Error())
	})

	t.Run("linked lot missing names the code and day", func(t *testing.T) {
		err := &LinkedInboundNotFoundError{StockCode: "SUGAR-002", Date: day}
		assert.Equal(t, `no inbound lot for stock "SUGAR-002" on 2024-03-15`, err.Error())
	})

	t.Run("immutable completed names the row id", func(t *testing.T) {
		id := uuid.New()
		err := &ImmutableCompletedError{ID: id}
		assert.Equal(t, fmt.Sprintf("outbound %s is COMPLETED and can no longer be modified", id), err.Error())
	})

	t.Run("unknown row status echoes the tag", func(t *testing.T) {
		err := &UnknownRowStatusError{Status: "MERGE"}
		assert.Equal(t, `unknown row status "MERGE"`, err.Error())
	})

	t.Run("struct errors match with errors.As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("batch failed: %w", &NotFoundError{Resource: "outbound", Key: "abc"})
		var notFound *NotFoundError
		assert.True(t, errors.As(wrapped, &notFound))
		assert.Equal(t, "outbound", notFound.Resource)
	})
}
