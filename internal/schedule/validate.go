package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrInvalidSchedule is returned by Validate. Evaluation never fails; this
// is only used when schedules are written.
var ErrInvalidSchedule = errors.New("invalid schedule")

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validate checks a schedule before it is stored.
func Validate(s Schedule) error {
	if !s.Type.Valid() {
		return fmt.Errorf("%w: unknown schedule type %q", ErrInvalidSchedule, s.Type)
	}

	for _, t := range []*string{s.StartTime, s.EndTime} {
		if t != nil && !clockPattern.MatchString(*t) {
			return fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidSchedule, *t)
		}
	}

	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: day of week %d out of range 0-6", ErrInvalidSchedule, d)
		}
	}

	var start, end time.Time
	if s.StartDate != nil {
		t, err := time.Parse(time.DateOnly, *s.StartDate)
		if err != nil {
			return fmt.Errorf("%w: start date %q is not YYYY-MM-DD", ErrInvalidSchedule, *s.StartDate)
		}
		start = t
	}
	if s.EndDate != nil {
		t, err := time.Parse(time.DateOnly, *s.EndDate)
		if err != nil {
			return fmt.Errorf("%w: end date %q is not YYYY-MM-DD", ErrInvalidSchedule, *s.EndDate)
		}
		end = t
	}
	if s.StartDate != nil && s.EndDate != nil && start.After(end) {
		return fmt.Errorf("%w: start date after end date", ErrInvalidSchedule)
	}

	return nil
}
