package schedule

import (
	"strconv"
	"strings"
	"time"
)

// IsTimeInRange reports whether now's wall-clock time lies in [start, end).
//
// An empty bound means no restriction. When start is later than end the
// window crosses midnight. start == end is a zero-width window and never
// matches.
func IsTimeInRange(now time.Time, start, end string) bool {
	if start == "" || end == "" {
		return true
	}

	current := now.Hour()*60 + now.Minute()
	from := clockMinutes(start)
	to := clockMinutes(end)

	if from > to {
		return current >= from || current < to
	}
	return current >= from && current < to
}

// IsDayIncluded reports whether now falls on one of days (0=Sunday).
// An empty list allows every day.
func IsDayIncluded(now time.Time, days []int) bool {
	if len(days) == 0 {
		return true
	}

	today := int(now.Weekday())
	for _, d := range days {
		if d == today {
			return true
		}
	}
	return false
}

// IsDateInRange reports whether the UTC calendar date of now lies within
// [start, end]. Both bounds are YYYY-MM-DD and compared as strings; an empty
// bound is not enforced.
func IsDateInRange(now time.Time, start, end string) bool {
	today := now.UTC().Format(time.DateOnly)

	if start != "" && today < start {
		return false
	}
	if end != "" && today > end {
		return false
	}
	return true
}

// IsActive evaluates a single schedule at now.
func IsActive(s Schedule, now time.Time) bool {
	if !s.IsActive {
		return false
	}

	start, end := deref(s.StartTime), deref(s.EndTime)

	switch s.Type {
	case TypeAlways:
		return true
	case TypeTimeRange:
		return IsTimeInRange(now, start, end) && IsDayIncluded(now, s.DaysOfWeek)
	case TypeDayOfWeek:
		return IsDayIncluded(now, s.DaysOfWeek)
	case TypeDateRange:
		return IsDateInRange(now, deref(s.StartDate), deref(s.EndDate)) &&
			IsTimeInRange(now, start, end)
	default:
		return false
	}
}

// clockMinutes converts "HH:MM" to minutes since midnight. Unparseable
// components count as zero.
func clockMinutes(v string) int {
	parts := strings.SplitN(v, ":", 3)

	hours := atoiOrZero(parts[0])
	minutes := 0
	if len(parts) > 1 {
		minutes = atoiOrZero(parts[1])
	}
	return hours*60 + minutes
}

func atoiOrZero(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
