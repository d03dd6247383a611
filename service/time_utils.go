package service

import (
	"time"
)

// FormatClock renders t as a 12-hour UTC clock, e.g. "03:04 PM"
func FormatClock(t time.Time) string {
	return t.UTC().Format("03:04 PM")
}

// FormatDate renders t as a UTC calendar date, e.g. "2024-05-01"
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
