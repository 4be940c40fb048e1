package schedule

import (
	"time"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

// NextDueDate returns the earliest occurrence of the pattern, anchored at
// anchor, that falls strictly after the given date. Occurrences never precede
// the anchor. The search is closed-form or bounded to a couple of
// blocks/months per frequency; it never scans day by day.
func NextDueDate(anchor domain.Date, p domain.RecurrencePattern, after domain.Date) (domain.Date, error) {
	if err := ValidatePattern(p); err != nil {
		return domain.Date{}, err
	}

	// floor is the exclusive lower bound of the search. When after predates
	// the anchor the first candidate is the anchor itself.
	floor := after
	if anchor.After(after) {
		floor = anchor.AddDays(-1)
	}

	switch p.Frequency {
	case domain.FrequencyDaily:
		return nextDaily(anchor, p.Interval, floor), nil
	case domain.FrequencyWeekly:
		return nextWeekly(anchor, p, floor), nil
	case domain.FrequencyMonthly:
		return nextMonthly(anchor, p, floor), nil
	default:
		return nextYearly(anchor, p.Interval, floor), nil
	}
}

// nextDaily is closed form: the smallest k >= 0 with anchor + k*interval days
// beyond the floor.
func nextDaily(anchor domain.Date, interval int, floor domain.Date) domain.Date {
	diff := floor.DaysSince(anchor)
	k := 0
	if diff >= 0 {
		k = diff/interval + 1
	}
	return anchor.AddDays(k * interval)
}

// nextWeekly walks blocks of interval weeks aligned to the Sunday of the
// anchor's week. Every block contains at least one candidate weekday, so the
// first qualifying date lies in the block containing the floor or the one
// after it.
func nextWeekly(anchor domain.Date, p domain.RecurrencePattern, floor domain.Date) domain.Date {
	weekStart := anchor.AddDays(-int(anchor.Weekday()))
	blockDays := p.Interval * 7
	days := p.SortedWeeklyDays()

	block := 0
	if diff := floor.DaysSince(weekStart); diff >= 0 {
		block = diff / blockDays
	}

	for b := block; ; b++ {
		for _, day := range days {
			candidate := weekStart.AddDays(b*blockDays + day)
			if candidate.After(floor) {
				return candidate
			}
		}
	}
}

// nextMonthly steps months in multiples of the interval from the anchor's
// month. By-date candidates clamp to the month length; by-weekday candidates
// are the nth (or last) weekday of the month.
func nextMonthly(anchor domain.Date, p domain.RecurrencePattern, floor domain.Date) domain.Date {
	anchorMonth := monthIndex(anchor)
	floorMonth := monthIndex(floor)

	// Start one interval before the floor's month to cover candidates later
	// in that month, then step forward.
	k := 0
	if delta := floorMonth - anchorMonth; delta > 0 {
		k = delta/p.Interval - 1
		if k < 0 {
			k = 0
		}
	}

	for {
		year, month := monthFromIndex(anchorMonth + k*p.Interval)
		var candidate domain.Date
		if p.MonthlyType == domain.MonthlyByDate {
			candidate = clampedDayOfMonth(year, month, p.MonthlyDay)
		} else {
			candidate = nthWeekdayOfMonth(year, month, p.MonthlyWeek, p.MonthlyWeekday)
		}
		if candidate.After(floor) {
			return candidate
		}
		k++
	}
}

// nextYearly advances the anchor's month/day in steps of interval years,
// clamping Feb 29 anchors to Feb 28 in non-leap years.
func nextYearly(anchor domain.Date, interval int, floor domain.Date) domain.Date {
	k := 0
	if delta := floor.Year() - anchor.Year(); delta > 0 {
		k = delta/interval - 1
		if k < 0 {
			k = 0
		}
	}

	for {
		year := anchor.Year() + k*interval
		day := anchor.Day()
		if anchor.Month() == time.February && day == 29 {
			day = daysInMonth(year, time.February)
		}
		candidate := domain.NewDate(year, anchor.Month(), day)
		if candidate.After(floor) {
			return candidate
		}
		k++
	}
}

func monthIndex(d domain.Date) int {
	return d.Year()*12 + int(d.Month()) - 1
}

func monthFromIndex(idx int) (int, time.Month) {
	return idx / 12, time.Month(idx%12 + 1)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampedDayOfMonth returns the given day in the month, pulled back to the
// month's last day when the month is shorter. Day 31 in February yields the
// 28th or 29th; the occurrence is never rolled into the next month.
func clampedDayOfMonth(year int, month time.Month, day int) domain.Date {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return domain.NewDate(year, month, day)
}

// nthWeekdayOfMonth returns the week-th occurrence of the weekday in the
// month; week == MonthlyWeekLast selects the final occurrence.
func nthWeekdayOfMonth(year int, month time.Month, week, weekday int) domain.Date {
	if week == domain.MonthlyWeekLast {
		last := domain.NewDate(year, month, daysInMonth(year, month))
		back := (int(last.Weekday()) - weekday + 7) % 7
		return last.AddDays(-back)
	}
	first := domain.NewDate(year, month, 1)
	forward := (weekday - int(first.Weekday()) + 7) % 7
	return first.AddDays(forward + (week-1)*7)
}
