// Package dateutils provides the tolerant date parsing used when coercing
// spreadsheet cells into calendar dates.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common date format constants used throughout the application.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
	DateLayoutYearMonth = "2006-01"
)

// Spreadsheet serial dates count days from the 1900 epoch (1899-12-30 once
// the historical leap-year bug is accounted for). Serials below the minimum
// are rejected so that small integers in a mislabeled column are not
// silently read as 19th-century dates.
const (
	serialEpochYear = 1899
	serialMin       = 10000.0 // 1927-05-18
	serialMax       = 2958465.0
)

var serialEpoch = time.Date(serialEpochYear, time.December, 30, 0, 0, 0, 0, time.UTC)

// CommonFormats is the list of formats tried when parsing textual dates,
// most specific first.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	DateLayoutEuropean,
	"2.1.2006",
	"02/01/2006",
	DateLayoutUS,
	"02-01-2006",
	DateLayoutWithMonth,
	"2006/01/02",
	"January 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"01/2006",
	"2006/01",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a raw date string.
func CleanDateString(dateStr string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate parses a raw cell string into a calendar date. It accepts the
// common textual and numeric encodings found in financial spreadsheets plus
// spreadsheet serial numbers; the time-of-day part of a serial is discarded.
func ParseDate(raw string) (time.Time, error) {
	cleaned := CleanDateString(raw)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}

	if t, ok := parseSerial(cleaned); ok {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
}

// IsDate reports whether the raw string parses as a calendar date.
func IsDate(raw string) bool {
	_, err := ParseDate(raw)
	return err == nil
}

// IsTextualDate reports whether the raw string parses as a date through one
// of the textual layouts, excluding serial numbers. The scanner relies on
// this so that plain amount columns are not mistaken for serial-date columns;
// serial coercion only applies to the column already mapped to the date role.
func IsTextualDate(raw string) bool {
	cleaned := CleanDateString(raw)
	if cleaned == "" {
		return false
	}
	for _, format := range CommonFormats {
		if _, err := time.Parse(format, cleaned); err == nil {
			return true
		}
	}
	return false
}

// parseSerial interprets a numeric string as a spreadsheet serial date.
func parseSerial(s string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	if serial < serialMin || serial > serialMax {
		return time.Time{}, false
	}
	days := int(serial)
	t := serialEpoch.AddDate(0, 0, days)
	return t, true
}

// YearMonth returns the calendar year-month bucket key for a date,
// e.g. "2024-01".
func YearMonth(t time.Time) string {
	return t.Format(DateLayoutYearMonth)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// CompareDates compares the calendar-day parts of two dates and returns
// -1, 0 or 1.
func CompareDates(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
