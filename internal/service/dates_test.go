package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("parses a bare date to UTC day start", func(t *testing.T) {
		day, err := parseDate("2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day)
	})

	t.Run("parses an RFC3339 timestamp and drops the time", func(t *testing.T) {
		day, err := parseDate("2024-03-15T18:45:12Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := parseDate("not-a-date")
		require.Error(t, err)

		var invalidDate *InvalidDateError
		require.ErrorAs(t, err, &invalidDate)
		assert.Equal(t, "not-a-date", invalidDate.Value)
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := parseDate("")
		var invalidDate *InvalidDateError
		require.ErrorAs(t, err, &invalidDate)
	})

	t.Run("rejects ambiguous local formats", func(t *testing.T) {
		_, err := parseDate("15/03/2024")
		require.Error(t, err)
	})
}
