package schedule

import (
	"cmp"
	"slices"
	"time"
)

// ActiveSchedule returns the highest priority schedule that is active at
// now. Equal priorities keep their input order. The input is not modified.
func ActiveSchedule(schedules []Schedule, now time.Time) (Schedule, bool) {
	if len(schedules) == 0 {
		return Schedule{}, false
	}

	ordered := slices.Clone(schedules)
	slices.SortStableFunc(ordered, func(a, b Schedule) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	for _, s := range ordered {
		if IsActive(s, now) {
			return s, true
		}
	}
	return Schedule{}, false
}

// IsMenuVisible reports whether a menu with the given schedules should be
// shown at now. A menu without schedules is always visible; otherwise at
// least one schedule must be active.
func IsMenuVisible(schedules []Schedule, now time.Time) bool {
	if len(schedules) == 0 {
		return true
	}

	for _, s := range schedules {
		if IsActive(s, now) {
			return true
		}
	}
	return false
}

// FilterVisible returns the menus visible at now, in their original order.
func FilterVisible[M Scheduled](menus []M, now time.Time) []M {
	visible := make([]M, 0, len(menus))
	for _, m := range menus {
		if IsMenuVisible(m.ScheduleSet(), now) {
			visible = append(visible, m)
		}
	}
	return visible
}
