package booking

import (
	"time"
)

// DateFilter selects a reporting window for reservations and call logs
type DateFilter string

const (
	DateFilterToday     DateFilter = "today"
	DateFilterThisWeek  DateFilter = "this-week"
	DateFilterThisMonth DateFilter = "this-month"
	DateFilterCustom    DateFilter = "custom"
	DateFilterAll       DateFilter = "all"
)

// DateRange is a closed interval on the server-local wall clock
type DateRange struct {
	From time.Time
	To   time.Time
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// ResolveDateRange computes the window for a filter. "all" and unknown filters
// return nil (no bounds). A custom filter with missing or unparseable bounds
// falls back to today.
func ResolveDateRange(filter DateFilter, customStart, customEnd string, now time.Time) *DateRange {
	switch filter {
	case DateFilterToday:
		return &DateRange{From: startOfDay(now), To: endOfDay(now)}

	case DateFilterThisWeek:
		// Week starts on Monday
		weekday := int(now.Weekday())
		diff := -(weekday - 1)
		if weekday == 0 {
			diff = -6
		}
		monday := startOfDay(now.AddDate(0, 0, diff))
		return &DateRange{From: monday, To: endOfDay(monday.AddDate(0, 0, 6))}

	case DateFilterThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return &DateRange{From: first, To: endOfDay(last)}

	case DateFilterCustom:
		from, okFrom := parseDate(customStart, now.Location())
		to, okTo := parseDate(customEnd, now.Location())
		if !okFrom || !okTo {
			// Missing or malformed custom bounds fall back to today
			return &DateRange{From: startOfDay(now), To: endOfDay(now)}
		}
		return &DateRange{From: from, To: endOfDay(to)}

	default:
		return nil
	}
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
