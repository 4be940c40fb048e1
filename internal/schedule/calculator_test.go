package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

func date(year int, month time.Month, day int) domain.Date {
	return domain.NewDate(year, month, day)
}

func TestNextDueDateDaily(t *testing.T) {
	tests := []struct {
		name     string
		anchor   domain.Date
		interval int
		after    domain.Date
		expected domain.Date
	}{
		{
			name:     "after precedes anchor returns anchor",
			anchor:   date(2024, time.January, 1),
			interval: 1,
			after:    date(2023, time.December, 25),
			expected: date(2024, time.January, 1),
		},
		{
			name:     "after equals anchor advances one interval",
			anchor:   date(2024, time.January, 1),
			interval: 1,
			after:    date(2024, time.January, 1),
			expected: date(2024, time.January, 2),
		},
		{
			name:     "interval multiplier skips off-grid days",
			anchor:   date(2024, time.January, 1),
			interval: 3,
			after:    date(2024, time.January, 5),
			expected: date(2024, time.January, 7),
		},
		{
			name:     "after lands exactly on an occurrence",
			anchor:   date(2024, time.January, 1),
			interval: 3,
			after:    date(2024, time.January, 7),
			expected: date(2024, time.January, 10),
		},
		{
			name:     "far future reference",
			anchor:   date(2024, time.January, 1),
			interval: 10,
			after:    date(2024, time.December, 31),
			expected: date(2025, time.January, 5), // day 370 from anchor
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := domain.RecurrencePattern{Frequency: domain.FrequencyDaily, Interval: tt.interval}
			result, err := NextDueDate(tt.anchor, pattern, tt.after)
			require.NoError(t, err)
			assert.True(t, result.Equal(tt.expected), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestNextDueDateWeekly(t *testing.T) {
	// 2024-03-04 is a Monday.
	monday := date(2024, time.March, 4)

	tests := []struct {
		name     string
		anchor   domain.Date
		interval int
		days     []int
		after    domain.Date
		expected domain.Date
	}{
		{
			name:     "multi-day picks the thursday in the same week",
			anchor:   monday,
			interval: 1,
			days:     []int{1, 4}, // Mon, Thu
			after:    monday,
			expected: date(2024, time.March, 7),
		},
		{
			name:     "multi-day wraps to next week's monday",
			anchor:   monday,
			interval: 1,
			days:     []int{1, 4},
			after:    date(2024, time.March, 7),
			expected: date(2024, time.March, 11),
		},
		{
			name:     "fortnightly stays on the anchor's week grid",
			anchor:   monday,
			interval: 2,
			days:     []int{1},
			after:    monday,
			expected: date(2024, time.March, 18),
		},
		{
			name:     "day earlier in the anchor week is not an occurrence",
			anchor:   monday,
			interval: 1,
			days:     []int{0, 1}, // Sun, Mon
			after:    date(2024, time.March, 1),
			expected: monday, // not Sunday March 3rd
		},
		{
			name:     "reference far ahead of the anchor",
			anchor:   monday,
			interval: 2,
			days:     []int{1},
			after:    date(2024, time.June, 1),
			expected: date(2024, time.June, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := domain.RecurrencePattern{
				Frequency:  domain.FrequencyWeekly,
				Interval:   tt.interval,
				WeeklyDays: tt.days,
			}
			result, err := NextDueDate(tt.anchor, pattern, tt.after)
			require.NoError(t, err)
			assert.True(t, result.Equal(tt.expected), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestNextDueDateMonthlyByDate(t *testing.T) {
	tests := []struct {
		name     string
		anchor   domain.Date
		interval int
		day      int
		after    domain.Date
		expected domain.Date
	}{
		{
			name:     "day 31 clamps to february 28 in a non-leap year",
			anchor:   date(2023, time.January, 31),
			interval: 1,
			day:      31,
			after:    date(2023, time.January, 31),
			expected: date(2023, time.February, 28),
		},
		{
			name:     "day 31 clamps to february 29 in a leap year",
			anchor:   date(2024, time.January, 31),
			interval: 1,
			day:      31,
			after:    date(2024, time.January, 31),
			expected: date(2024, time.February, 29),
		},
		{
			name:     "clamped month does not steal the next month's occurrence",
			anchor:   date(2023, time.January, 31),
			interval: 1,
			day:      31,
			after:    date(2023, time.February, 28),
			expected: date(2023, time.March, 31),
		},
		{
			name:     "quarterly stepping",
			anchor:   date(2024, time.January, 15),
			interval: 3,
			day:      15,
			after:    date(2024, time.February, 1),
			expected: date(2024, time.April, 15),
		},
		{
			name:     "first occurrence can be the anchor itself",
			anchor:   date(2024, time.May, 10),
			interval: 1,
			day:      10,
			after:    date(2024, time.April, 1),
			expected: date(2024, time.May, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := domain.RecurrencePattern{
				Frequency:   domain.FrequencyMonthly,
				Interval:    tt.interval,
				MonthlyType: domain.MonthlyByDate,
				MonthlyDay:  tt.day,
			}
			result, err := NextDueDate(tt.anchor, pattern, tt.after)
			require.NoError(t, err)
			assert.True(t, result.Equal(tt.expected), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestNextDueDateMonthlyByWeekday(t *testing.T) {
	tests := []struct {
		name     string
		anchor   domain.Date
		week     int
		weekday  int
		after    domain.Date
		expected domain.Date
	}{
		{
			// March 2023 has 31 days and starts on a Wednesday; its last
			// Friday is the 31st.
			name:     "last friday of a 31-day month starting wednesday",
			anchor:   date(2023, time.March, 1),
			week:     domain.MonthlyWeekLast,
			weekday:  5, // Friday
			after:    date(2023, time.March, 1),
			expected: date(2023, time.March, 31),
		},
		{
			name:     "last friday already passed moves to next month",
			anchor:   date(2023, time.March, 1),
			week:     domain.MonthlyWeekLast,
			weekday:  5,
			after:    date(2023, time.March, 31),
			expected: date(2023, time.April, 28),
		},
		{
			name:     "first monday of the month",
			anchor:   date(2024, time.June, 1),
			week:     1,
			weekday:  1,
			after:    date(2024, time.June, 1),
			expected: date(2024, time.June, 3),
		},
		{
			name:     "fourth sunday of the month",
			anchor:   date(2024, time.June, 1),
			week:     4,
			weekday:  0,
			after:    date(2024, time.June, 1),
			expected: date(2024, time.June, 23),
		},
		{
			name:     "second wednesday after it passed",
			anchor:   date(2024, time.June, 1),
			week:     2,
			weekday:  3,
			after:    date(2024, time.June, 12),
			expected: date(2024, time.July, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := domain.RecurrencePattern{
				Frequency:      domain.FrequencyMonthly,
				Interval:       1,
				MonthlyType:    domain.MonthlyByWeekday,
				MonthlyWeek:    tt.week,
				MonthlyWeekday: tt.weekday,
			}
			result, err := NextDueDate(tt.anchor, pattern, tt.after)
			require.NoError(t, err)
			assert.True(t, result.Equal(tt.expected), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestNextDueDateYearly(t *testing.T) {
	tests := []struct {
		name     string
		anchor   domain.Date
		interval int
		after    domain.Date
		expected domain.Date
	}{
		{
			name:     "plain anniversary",
			anchor:   date(2024, time.May, 10),
			interval: 1,
			after:    date(2024, time.May, 10),
			expected: date(2025, time.May, 10),
		},
		{
			name:     "feb 29 anchor clamps to feb 28 in a non-leap year",
			anchor:   date(2024, time.February, 29),
			interval: 1,
			after:    date(2024, time.February, 29),
			expected: date(2025, time.February, 28),
		},
		{
			name:     "feb 29 anchor recovers the 29th in a leap year",
			anchor:   date(2024, time.February, 29),
			interval: 1,
			after:    date(2027, time.February, 28),
			expected: date(2028, time.February, 29),
		},
		{
			name:     "multi-year interval",
			anchor:   date(2020, time.July, 4),
			interval: 2,
			after:    date(2023, time.January, 1),
			expected: date(2024, time.July, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := domain.RecurrencePattern{Frequency: domain.FrequencyYearly, Interval: tt.interval}
			result, err := NextDueDate(tt.anchor, pattern, tt.after)
			require.NoError(t, err)
			assert.True(t, result.Equal(tt.expected), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestNextDueDateInvalidPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern domain.RecurrencePattern
	}{
		{
			name:    "zero interval",
			pattern: domain.RecurrencePattern{Frequency: domain.FrequencyDaily, Interval: 0},
		},
		{
			name:    "negative interval",
			pattern: domain.RecurrencePattern{Frequency: domain.FrequencyWeekly, Interval: -2, WeeklyDays: []int{1}},
		},
		{
			name:    "weekly without weekdays",
			pattern: domain.RecurrencePattern{Frequency: domain.FrequencyWeekly, Interval: 1},
		},
		{
			name:    "weekday ordinal out of range",
			pattern: domain.RecurrencePattern{Frequency: domain.FrequencyWeekly, Interval: 1, WeeklyDays: []int{7}},
		},
		{
			name: "monthly by weekday with week zero",
			pattern: domain.RecurrencePattern{
				Frequency: domain.FrequencyMonthly, Interval: 1,
				MonthlyType: domain.MonthlyByWeekday, MonthlyWeek: 0, MonthlyWeekday: 5,
			},
		},
		{
			name: "monthly by date with day zero",
			pattern: domain.RecurrencePattern{
				Frequency: domain.FrequencyMonthly, Interval: 1,
				MonthlyType: domain.MonthlyByDate, MonthlyDay: 0,
			},
		},
		{
			name:    "monthly without a type",
			pattern: domain.RecurrencePattern{Frequency: domain.FrequencyMonthly, Interval: 1},
		},
		{
			name:    "unknown frequency",
			pattern: domain.RecurrencePattern{Frequency: "hourly", Interval: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextDueDate(date(2024, time.January, 1), tt.pattern, date(2024, time.January, 1))
			assert.ErrorIs(t, err, ErrInvalidRecurrencePattern)
		})
	}
}

// The returned occurrence must always land strictly after the reference date,
// identical inputs must produce identical results, and no valid occurrence may
// lie between the reference and the result.
func TestNextDueDateProperties(t *testing.T) {
	anchor := date(2024, time.January, 31)
	patterns := []domain.RecurrencePattern{
		{Frequency: domain.FrequencyDaily, Interval: 4},
		{Frequency: domain.FrequencyWeekly, Interval: 2, WeeklyDays: []int{1, 3, 5}},
		{Frequency: domain.FrequencyMonthly, Interval: 1, MonthlyType: domain.MonthlyByDate, MonthlyDay: 31},
		{Frequency: domain.FrequencyMonthly, Interval: 2, MonthlyType: domain.MonthlyByWeekday, MonthlyWeek: domain.MonthlyWeekLast, MonthlyWeekday: 5},
		{Frequency: domain.FrequencyYearly, Interval: 1},
	}

	for _, pattern := range patterns {
		after := date(2023, time.December, 15)
		for i := 0; i < 40; i++ {
			first, err := NextDueDate(anchor, pattern, after)
			require.NoError(t, err)
			second, err := NextDueDate(anchor, pattern, after)
			require.NoError(t, err)

			assert.True(t, first.Equal(second), "determinism violated for %+v", pattern)
			assert.True(t, first.After(after), "monotonicity violated for %+v: %s !> %s", pattern, first, after)

			// Minimality: asking from the day before the result must return
			// the same occurrence.
			prev, err := NextDueDate(anchor, pattern, first.AddDays(-1))
			require.NoError(t, err)
			assert.True(t, prev.Equal(first), "occurrence between %s and %s for %+v", after, first, pattern)

			after = first
		}
	}
}
