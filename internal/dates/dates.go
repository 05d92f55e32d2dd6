// Package dates resolves the date representations found in vendor usage
// exports into canonical calendar dates (UTC midnight).
package dates

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a raw value matches none of the supported
// layouts. Callers decide per row whether that is fatal or skippable.
var ErrInvalidDate = errors.New("invalid_date")

// Month-bearing layouts seen across export headers and cells. Two-digit years
// follow Go's 69 pivot, which matches the vendors' post-2000 data.
var layouts = []string{
	"2006-01-02",
	"06-Jan",
	"Jan-06",
	"2006-Jan",
	"Jan-2006",
}

// Parse resolves raw into a calendar date. Month-only layouts resolve to the
// first day of the month.
func Parse(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// AssignMonth attributes a reporting period to a single calendar month,
// returned as the first day of that month. Weekly exports can span two
// months, so attribution follows the user's actual activity when known:
//
//   - with firstActive/lastActive, the month containing the midpoint of the
//     active span wins;
//   - otherwise the candidate month containing more of the period's days
//     wins, ties going to the earlier month.
//
// A period fully inside one month returns that month trivially.
func AssignMonth(periodStart, periodEnd time.Time, firstActive, lastActive *time.Time) time.Time {
	if firstActive != nil && lastActive != nil {
		mid := firstActive.Add(lastActive.Sub(*firstActive) / 2)
		return monthOf(mid)
	}

	if sameMonth(periodStart, periodEnd) {
		return monthOf(periodStart)
	}

	// Days of the period falling in the starting month vs the ending month.
	startMonthEnd := monthOf(periodStart).AddDate(0, 1, -1)
	daysInStart := int(startMonthEnd.Sub(dayOf(periodStart)).Hours()/24) + 1
	daysInEnd := periodEnd.Day()

	if daysInEnd > daysInStart {
		return monthOf(periodEnd)
	}
	return monthOf(periodStart)
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
