package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayRange(t *testing.T) {
	t.Run("expands a midday timestamp to full day bounds", func(t *testing.T) {
		ts := time.Date(2024, 3, 15, 14, 30, 45, 123_000_000, time.UTC)
		start, end := DayRange(ts)

		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999_000_000, time.UTC), end)
	})

	t.Run("midnight input keeps the same day", func(t *testing.T) {
		ts := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		start, end := DayRange(ts)

		assert.Equal(t, ts, start)
		assert.Equal(t, 15, end.Day())
		assert.True(t, end.After(start))
	})

	t.Run("end never spills into the next day", func(t *testing.T) {
		ts := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
		start, end := DayRange(ts)

		assert.Equal(t, start.Day(), end.Day())
		assert.Equal(t, start.Month(), end.Month())
		next := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.True(t, end.Before(next))
	})

	t.Run("preserves the input location", func(t *testing.T) {
		loc := time.FixedZone("UTC+7", 7*3600)
		ts := time.Date(2024, 6, 1, 10, 0, 0, 0, loc)
		start, _ := DayRange(ts)

		assert.Equal(t, loc, start.Location())
	})
}
