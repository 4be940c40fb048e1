package domain

import (
	"sort"
	"time"
)

// Frequency is the base unit of a recurrence pattern.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// MonthlyType selects how a monthly pattern picks its day.
type MonthlyType string

const (
	MonthlyByDate    MonthlyType = "by_date"    // fixed day of month, clamped to month length
	MonthlyByWeekday MonthlyType = "by_weekday" // nth (or last) weekday of month
)

// MonthlyWeekLast selects the last occurrence of the weekday in the month.
const MonthlyWeekLast = -1

// LegacyFrequency is the flat recurrence enum used by records created before
// the pattern model existed. Once a pattern is derived it is authoritative.
type LegacyFrequency string

const (
	LegacyWeekly      LegacyFrequency = "weekly"
	LegacyFortnightly LegacyFrequency = "fortnightly"
	LegacyMonthly     LegacyFrequency = "monthly"
	LegacyQuarterly   LegacyFrequency = "quarterly"
	LegacyYearly      LegacyFrequency = "yearly"
)

// RecurrencePattern describes how often and on what calendar positions a
// payment recurs. Fields irrelevant to the active Frequency/MonthlyType
// combination are don't-care: they may be set but are ignored.
type RecurrencePattern struct {
	Frequency Frequency `json:"frequency" db:"frequency"`
	// Interval is the multiplier on the base unit: every N days/weeks/months/years.
	Interval int `json:"interval" db:"interval"`
	// WeeklyDays holds weekday ordinals (Sunday=0) for weekly patterns.
	WeeklyDays []int `json:"weekly_days,omitempty" db:"-"`
	// MonthlyType, MonthlyDay, MonthlyWeek and MonthlyWeekday apply to monthly
	// patterns only.
	MonthlyType    MonthlyType `json:"monthly_type,omitempty" db:"monthly_type"`
	MonthlyDay     int         `json:"monthly_day,omitempty" db:"monthly_day"`
	MonthlyWeek    int         `json:"monthly_week,omitempty" db:"monthly_week"`
	MonthlyWeekday int         `json:"monthly_weekday,omitempty" db:"monthly_weekday"`
}

// OnWeekday reports whether the pattern's weekly day set contains wd.
func (p RecurrencePattern) OnWeekday(wd time.Weekday) bool {
	for _, day := range p.WeeklyDays {
		if day == int(wd) {
			return true
		}
	}
	return false
}

// SortedWeeklyDays returns the weekly day ordinals ascending, de-duplicated.
func (p RecurrencePattern) SortedWeeklyDays() []int {
	seen := make(map[int]bool, len(p.WeeklyDays))
	days := make([]int, 0, len(p.WeeklyDays))
	for _, day := range p.WeeklyDays {
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days
}

// ReminderKind distinguishes on-the-day reminders from N-days-before ones.
type ReminderKind string

const (
	ReminderOnDay  ReminderKind = "on_day"
	ReminderBefore ReminderKind = "before"
)

// ReminderSpec is one reminder rule. Days is the offset before the due date
// and is zero for on-day reminders.
type ReminderSpec struct {
	Kind ReminderKind `json:"kind" db:"kind"`
	Days int          `json:"days" db:"days"`
}

// ReminderSet is a set of reminder specs keyed on (kind, days). The map keying
// enforces the no-duplicates invariant.
type ReminderSet map[ReminderSpec]struct{}

// NewReminderSet builds a set from specs, collapsing duplicates.
func NewReminderSet(specs ...ReminderSpec) ReminderSet {
	set := make(ReminderSet, len(specs))
	for _, spec := range specs {
		set[spec] = struct{}{}
	}
	return set
}

// Add inserts a spec; inserting an existing spec is a no-op.
func (s ReminderSet) Add(spec ReminderSpec) {
	s[spec] = struct{}{}
}

// Contains reports membership.
func (s ReminderSet) Contains(spec ReminderSpec) bool {
	_, ok := s[spec]
	return ok
}

// Specs returns the members as a deterministic slice, ordered by kind then days.
func (s ReminderSet) Specs() []ReminderSpec {
	specs := make([]ReminderSpec, 0, len(s))
	for spec := range s {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		if specs[i].Kind != specs[j].Kind {
			return specs[i].Kind < specs[j].Kind
		}
		return specs[i].Days < specs[j].Days
	})
	return specs
}
