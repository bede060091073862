// Package dateutil holds the two date formats the bot deals with: the
// operator types DD-MM-YYYY, the database stores YYYY-MM-DD (so range
// queries compare correctly as strings).
package dateutil

import (
	"regexp"
	"time"
)

const (
	// ISO is the storage format.
	ISO = "2006-01-02"
	// DMY is the chat-facing format.
	DMY = "02-01-2006"
)

var reDMY = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ParseDMY parses a DD-MM-YYYY string, rejecting anything else.
func ParseDMY(s string) (time.Time, error) {
	if !reDMY.MatchString(s) {
		return time.Time{}, &time.ParseError{Layout: DMY, Value: s, Message: ": expected DD-MM-YYYY"}
	}
	return time.Parse(DMY, s)
}

func ValidDMY(s string) bool {
	_, err := ParseDMY(s)
	return err == nil
}

// Key returns the storage key for a day.
func Key(t time.Time) string { return t.Format(ISO) }

func FormatDMY(t time.Time) string { return t.Format(DMY) }

// FormatLong renders 15-Jul-2025.
func FormatLong(t time.Time) string { return t.Format("02-Jan-2006") }

// FormatShort renders 15-Jul.
func FormatShort(t time.Time) string { return t.Format("02-Jan") }

// KeyToDMY converts a storage key back to the chat format. Invalid keys are
// returned unchanged; they can only come from hand-edited rows.
func KeyToDMY(key string) string {
	t, err := time.Parse(ISO, key)
	if err != nil {
		return key
	}
	return FormatDMY(t)
}

// IsRestDay reports whether attendance is skipped for the weekday (Sunday).
func IsRestDay(t time.Time) bool { return t.Weekday() == time.Sunday }

// MonthBounds returns the first and last day of t's calendar month.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// WorkingDays returns the storage keys of every day in [start, end] that is
// neither the rest day nor in the holiday set.
func WorkingDays(start, end time.Time, holidays map[string]bool) []string {
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsRestDay(d) {
			continue
		}
		key := Key(d)
		if holidays[key] {
			continue
		}
		days = append(days, key)
	}
	return days
}
