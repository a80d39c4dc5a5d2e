package schedule

// Type is the kind of availability rule a schedule describes.
type Type string

const (
	TypeAlways    Type = "always"
	TypeTimeRange Type = "time_range"
	TypeDayOfWeek Type = "day_of_week"
	TypeDateRange Type = "date_range"
)

// Valid reports whether t is one of the known schedule types.
func (t Type) Valid() bool {
	switch t {
	case TypeAlways, TypeTimeRange, TypeDayOfWeek, TypeDateRange:
		return true
	default:
		return false
	}
}

// Schedule is one availability rule attached to a menu.
//
// Optional fields are permissive when absent: a nil time bound, an empty
// DaysOfWeek or a nil date bound never restricts activation.
type Schedule struct {
	ID     string `json:"id" yaml:"id"`
	MenuID string `json:"menu_id" yaml:"menu_id"`
	Name   string `json:"name" yaml:"name"`

	Type Type `json:"schedule_type" yaml:"schedule_type"`

	// HH:MM, wall clock of the venue
	StartTime *string `json:"start_time,omitempty" yaml:"start_time"`
	EndTime   *string `json:"end_time,omitempty" yaml:"end_time"`

	// 0=Sunday ... 6=Saturday, same numbering as time.Weekday
	DaysOfWeek []int `json:"days_of_week,omitempty" yaml:"days_of_week"`

	// YYYY-MM-DD, inclusive
	StartDate *string `json:"start_date,omitempty" yaml:"start_date"`
	EndDate   *string `json:"end_date,omitempty" yaml:"end_date"`

	Priority int  `json:"priority" yaml:"priority"`
	IsActive bool `json:"is_active" yaml:"is_active"`
}

// Scheduled is anything that carries a schedule set, typically a menu.
type Scheduled interface {
	ScheduleSet() []Schedule
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
