package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

// 2024-06-03 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.June, day, hour, minute, 0, 0, time.UTC)
}

func TestIsTimeInRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		now        time.Time
		want       bool
	}{
		{"no bounds", "", "", at(3, 12, 0), true},
		{"missing end", "09:00", "", at(3, 3, 0), true},
		{"missing start", "", "17:00", at(3, 20, 0), true},
		{"inside window", "09:00", "17:00", at(3, 12, 30), true},
		{"start inclusive", "09:00", "17:00", at(3, 9, 0), true},
		{"end exclusive", "09:00", "17:00", at(3, 17, 0), false},
		{"before window", "09:00", "17:00", at(3, 8, 59), false},
		{"overnight late", "22:00", "02:00", at(3, 23, 30), true},
		{"overnight early", "22:00", "02:00", at(3, 1, 0), true},
		{"overnight midday", "22:00", "02:00", at(3, 12, 0), false},
		{"overnight end exclusive", "22:00", "02:00", at(3, 2, 0), false},
		{"overnight midnight", "22:00", "02:00", at(3, 0, 0), true},
		{"hour only bound", "9", "10", at(3, 9, 30), true},
		{"seconds ignored", "09:30:00", "10:00:00", at(3, 9, 45), true},
		{"garbage start counts as midnight", "xx:yy", "01:00", at(3, 0, 30), true},
		{"garbage minutes count as zero", "09:zz", "10:00", at(3, 9, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTimeInRange(tt.now, tt.start, tt.end))
		})
	}
}

func TestIsTimeInRange_ZeroWidthWindowNeverMatches(t *testing.T) {
	for minute := 0; minute < 24*60; minute++ {
		now := at(3, minute/60, minute%60)
		if IsTimeInRange(now, "09:00", "09:00") {
			t.Fatalf("09:00-09:00 matched at %s", now.Format("15:04"))
		}
	}
}

func TestIsDayIncluded(t *testing.T) {
	monday := at(3, 10, 0)
	sunday := at(2, 10, 0)

	assert.True(t, IsDayIncluded(monday, nil))
	assert.True(t, IsDayIncluded(monday, []int{}))
	assert.True(t, IsDayIncluded(monday, []int{1, 3, 5}))
	assert.False(t, IsDayIncluded(monday, []int{0, 6}))
	assert.True(t, IsDayIncluded(sunday, []int{0}))
	assert.False(t, IsDayIncluded(sunday, []int{7}))
}

func TestIsDateInRange_InclusiveBounds(t *testing.T) {
	start, end := "2024-06-01", "2024-06-30"

	assert.True(t, IsDateInRange(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), start, end))
	assert.True(t, IsDateInRange(time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC), start, end))
	assert.False(t, IsDateInRange(time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC), start, end))
	assert.False(t, IsDateInRange(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), start, end))
}

func TestIsDateInRange_OpenBounds(t *testing.T) {
	now := at(15, 12, 0)

	assert.True(t, IsDateInRange(now, "", ""))
	assert.True(t, IsDateInRange(now, "2024-06-15", ""))
	assert.False(t, IsDateInRange(now, "2024-06-16", ""))
	assert.True(t, IsDateInRange(now, "", "2024-06-15"))
	assert.False(t, IsDateInRange(now, "", "2024-06-14"))
}

func TestIsDateInRange_UsesUTCDate(t *testing.T) {
	// 2024-07-01 01:00 in UTC+5 is still 2024-06-30 in UTC.
	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2024, time.July, 1, 1, 0, 0, 0, loc)

	assert.True(t, IsDateInRange(now, "2024-06-01", "2024-06-30"))
}

func TestIsActive(t *testing.T) {
	monday := at(3, 12, 0)

	tests := []struct {
		name string
		s    Schedule
		want bool
	}{
		{
			name: "always",
			s:    Schedule{Type: TypeAlways, IsActive: true},
			want: true,
		},
		{
			name: "always ignores other fields",
			s: Schedule{
				Type: TypeAlways, IsActive: true,
				StartTime: ptr("01:00"), EndTime: ptr("02:00"),
				DaysOfWeek: []int{0}, EndDate: ptr("2000-01-01"),
			},
			want: true,
		},
		{
			name: "time range inside on allowed day",
			s:    Schedule{Type: TypeTimeRange, IsActive: true, StartTime: ptr("11:00"), EndTime: ptr("15:00"), DaysOfWeek: []int{1}},
			want: true,
		},
		{
			name: "time range inside on wrong day",
			s:    Schedule{Type: TypeTimeRange, IsActive: true, StartTime: ptr("11:00"), EndTime: ptr("15:00"), DaysOfWeek: []int{0, 6}},
			want: false,
		},
		{
			name: "time range outside",
			s:    Schedule{Type: TypeTimeRange, IsActive: true, StartTime: ptr("18:00"), EndTime: ptr("22:00")},
			want: false,
		},
		{
			name: "time range without bounds",
			s:    Schedule{Type: TypeTimeRange, IsActive: true},
			want: true,
		},
		{
			name: "day of week match",
			s:    Schedule{Type: TypeDayOfWeek, IsActive: true, DaysOfWeek: []int{1}},
			want: true,
		},
		{
			name: "day of week ignores time",
			s:    Schedule{Type: TypeDayOfWeek, IsActive: true, DaysOfWeek: []int{1}, StartTime: ptr("01:00"), EndTime: ptr("02:00")},
			want: true,
		},
		{
			name: "day of week miss",
			s:    Schedule{Type: TypeDayOfWeek, IsActive: true, DaysOfWeek: []int{2}},
			want: false,
		},
		{
			name: "date range with time",
			s:    Schedule{Type: TypeDateRange, IsActive: true, StartDate: ptr("2024-06-01"), EndDate: ptr("2024-06-30"), StartTime: ptr("11:00"), EndTime: ptr("13:00")},
			want: true,
		},
		{
			name: "date range outside time",
			s:    Schedule{Type: TypeDateRange, IsActive: true, StartDate: ptr("2024-06-01"), EndDate: ptr("2024-06-30"), StartTime: ptr("17:00"), EndTime: ptr("23:00")},
			want: false,
		},
		{
			name: "date range ignores days",
			s:    Schedule{Type: TypeDateRange, IsActive: true, StartDate: ptr("2024-06-01"), DaysOfWeek: []int{0}},
			want: true,
		},
		{
			name: "date range expired",
			s:    Schedule{Type: TypeDateRange, IsActive: true, EndDate: ptr("2024-05-31")},
			want: false,
		},
		{
			name: "unknown type",
			s:    Schedule{Type: Type("happy_hour"), IsActive: true},
			want: false,
		},
		{
			name: "empty type",
			s:    Schedule{IsActive: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsActive(tt.s, monday))
		})
	}
}

func TestIsActive_DayOfWeekWithoutDaysIsAlwaysActive(t *testing.T) {
	s := Schedule{Type: TypeDayOfWeek, IsActive: true}

	for day := 1; day <= 7; day++ {
		for _, hour := range []int{0, 6, 12, 23} {
			assert.True(t, IsActive(s, at(day, hour, 0)))
		}
	}
}

func TestIsActive_MasterSwitchWins(t *testing.T) {
	schedules := []Schedule{
		{Type: TypeAlways},
		{Type: TypeTimeRange, StartTime: ptr("00:00"), EndTime: ptr("23:59")},
		{Type: TypeDayOfWeek, DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6}},
		{Type: TypeDateRange},
	}

	for _, s := range schedules {
		for day := 1; day <= 7; day++ {
			for hour := 0; hour < 24; hour += 3 {
				assert.False(t, IsActive(s, at(day, hour, 30)), "type %s", s.Type)
			}
		}
	}
}

func TestIsActive_Idempotent(t *testing.T) {
	s := Schedule{Type: TypeTimeRange, IsActive: true, StartTime: ptr("22:00"), EndTime: ptr("02:00"), DaysOfWeek: []int{1}}
	now := at(3, 23, 0)

	first := IsActive(s, now)
	second := IsActive(s, now)

	assert.True(t, first)
	assert.Equal(t, first, second)
}
