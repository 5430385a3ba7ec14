package utils

import (
	"fmt"
	"time"
)

// Layouts used when rendering record timestamps.
const (
	DisplayLayout = "02/01/2006 15:04"
	DateLayout    = "02/01/2006"
	ISOLayout     = "2006-01-02T15:04:05"
)

// FormatDisplay renders t as dd/MM/yyyy HH:mm.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// FormatDate renders t as dd/MM/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatISO renders t as a zone-less ISO 8601 timestamp.
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}

// ParseISO accepts RFC 3339 or the zone-less layout used by the contact API.
func ParseISO(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(ISOLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

// DaysBetween counts whole calendar days from a to b in a's location.
func DaysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	start := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	end := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, a.Location())
	return int(end.Sub(start).Hours() / 24)
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.YearDay() == now.YearDay()
}
