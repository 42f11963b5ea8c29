package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ParseDate parses a YYYY-MM-DD date or an RFC3339 timestamp
func ParseDate(dateStr string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD or RFC3339")
}

// StartOfDay truncates t to midnight UTC of its calendar day
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// whereDayRange restricts column to the calendar days [start, end], both inclusive.
// Either bound may be nil.
func whereDayRange(query *gorm.DB, column string, start, end *time.Time) *gorm.DB {
	if start != nil {
		query = query.Where(column+" >= ?", StartOfDay(*start))
	}
	if end != nil {
		query = query.Where(column+" < ?", StartOfDay(*end).Add(24*time.Hour))
	}
	return query
}
