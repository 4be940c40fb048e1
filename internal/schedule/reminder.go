package schedule

import (
	"sort"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

// ResolveReminders maps a reminder set against a due date, producing the
// concrete trigger dates in ascending order. Distinct specs that land on the
// same date (e.g. on-day and before:0) collapse to one entry.
func ResolveReminders(dueDate domain.Date, specs domain.ReminderSet) []domain.Date {
	dates := make([]domain.Date, 0, len(specs))
	for spec := range specs {
		if spec.Kind == domain.ReminderBefore {
			dates = append(dates, dueDate.AddDays(-spec.Days))
		} else {
			dates = append(dates, dueDate)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	deduped := dates[:0]
	for _, d := range dates {
		if len(deduped) == 0 || !deduped[len(deduped)-1].Equal(d) {
			deduped = append(deduped, d)
		}
	}
	return deduped
}
