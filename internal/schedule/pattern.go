// Package schedule is the recurring-payment scheduling engine: pure calendar
// arithmetic over a payment's scheduling fields. It computes next due dates,
// decides when a recurring series terminates, and derives reminder trigger
// dates. Nothing in this package performs I/O or holds state, so every
// function is safe to call concurrently on independent values.
package schedule

import (
	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

// ValidatePattern checks that a pattern's fields are sufficient for its
// declared frequency. Fields irrelevant to the active frequency are ignored,
// never rejected.
func ValidatePattern(p domain.RecurrencePattern) error {
	if p.Interval <= 0 {
		return invalidPattern("interval must be positive, got %d", p.Interval)
	}

	switch p.Frequency {
	case domain.FrequencyDaily, domain.FrequencyYearly:
		return nil

	case domain.FrequencyWeekly:
		if len(p.WeeklyDays) == 0 {
			return invalidPattern("weekly pattern has no weekdays")
		}
		for _, day := range p.WeeklyDays {
			if day < 0 || day > 6 {
				return invalidPattern("weekday ordinal %d out of range 0-6", day)
			}
		}
		return nil

	case domain.FrequencyMonthly:
		switch p.MonthlyType {
		case domain.MonthlyByDate:
			if p.MonthlyDay < 1 || p.MonthlyDay > 31 {
				return invalidPattern("monthly day %d out of range 1-31", p.MonthlyDay)
			}
		case domain.MonthlyByWeekday:
			if p.MonthlyWeek != domain.MonthlyWeekLast && (p.MonthlyWeek < 1 || p.MonthlyWeek > 4) {
				return invalidPattern("monthly week %d not in {1,2,3,4,-1}", p.MonthlyWeek)
			}
			if p.MonthlyWeekday < 0 || p.MonthlyWeekday > 6 {
				return invalidPattern("weekday ordinal %d out of range 0-6", p.MonthlyWeekday)
			}
		default:
			return invalidPattern("unknown monthly type %q", p.MonthlyType)
		}
		return nil

	default:
		return invalidPattern("unknown frequency %q", p.Frequency)
	}
}

// LegacyToPattern converts an old single-enum frequency into the modern
// recurrence pattern. The anchor date supplies the calendar positions the
// legacy format left implicit: its weekday for weekly rules, its day of month
// for monthly ones. The mapping is total; every legacy value yields exactly
// one pattern.
func LegacyToPattern(legacy domain.LegacyFrequency, anchor domain.Date) domain.RecurrencePattern {
	switch legacy {
	case domain.LegacyWeekly:
		return domain.RecurrencePattern{
			Frequency:  domain.FrequencyWeekly,
			Interval:   1,
			WeeklyDays: []int{int(anchor.Weekday())},
		}
	case domain.LegacyFortnightly:
		return domain.RecurrencePattern{
			Frequency:  domain.FrequencyWeekly,
			Interval:   2,
			WeeklyDays: []int{int(anchor.Weekday())},
		}
	case domain.LegacyMonthly:
		return domain.RecurrencePattern{
			Frequency:   domain.FrequencyMonthly,
			Interval:    1,
			MonthlyType: domain.MonthlyByDate,
			MonthlyDay:  anchor.Day(),
		}
	case domain.LegacyQuarterly:
		return domain.RecurrencePattern{
			Frequency:   domain.FrequencyMonthly,
			Interval:    3,
			MonthlyType: domain.MonthlyByDate,
			MonthlyDay:  anchor.Day(),
		}
	default: // yearly, and anything unrecognized degrades to it
		return domain.RecurrencePattern{
			Frequency: domain.FrequencyYearly,
			Interval:  1,
		}
	}
}
