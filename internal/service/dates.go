package service

import "time"

// Accepted request date layouts. The grid sends bare dates; some clients
// send full RFC3339 timestamps.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate turns a request date string into the start of its calendar day.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return day, nil
		}
	}
	return time.Time{}, &InvalidDateError{Value: value}
}
