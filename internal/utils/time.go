package utils

import (
	"fmt"
	"time"
	// Zone data for hosts without /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/julianstephens/workform/internal/constants"
)

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
// "Today" follows the configured timezone, not the host's.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseDate parses a civil date (YYYY-MM-DD). The result is midnight UTC and
// only its calendar fields are meaningful.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ValidDate reports whether dateStr is a real YYYY-MM-DD date.
func ValidDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// Weekday returns the day of week of a civil date, independent of any timezone.
func Weekday(dateStr string) (time.Weekday, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// IsWeekend reports whether a civil date falls on Saturday or Sunday.
func IsWeekend(dateStr string) (bool, error) {
	wd, err := Weekday(dateStr)
	if err != nil {
		return false, err
	}
	return wd == time.Saturday || wd == time.Sunday, nil
}

// AddDays shifts a civil date by n days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// FirstOfMonth returns the first day of dateStr's month.
func FirstOfMonth(dateStr string) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat), nil
}

// MonthBounds returns the first and last dates of a month (1-12).
func MonthBounds(year int, month time.Month) (string, string, error) {
	if month < time.January || month > time.December {
		return "", "", fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(constants.DateFormat), last.Format(constants.DateFormat), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
