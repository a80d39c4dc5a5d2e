package schedule

import "time"

// Clock supplies the current instant to callers of the evaluator.
// Evaluation functions never read it themselves; they take now explicitly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the server time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
