package schedule

import (
	"fmt"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

// NormalizePayment recomputes a payment's derived scheduling fields for the
// create/edit path. It resolves the authoritative recurrence rule (deriving
// one from a legacy frequency when needed), recomputes the next due date, and
// applies series termination. The input is not mutated; repeated application
// to its own output is a fixed point.
func NormalizePayment(p domain.Payment) (domain.Payment, error) {
	p = resolveSchedule(p)

	if !p.Recurring {
		return normalizeNonRecurring(p), nil
	}

	if p.Recurrence == nil {
		return domain.Payment{}, invalidPattern("recurring payment %s has no recurrence rule", p.ID)
	}

	next, err := NextDueDate(p.StartDate, *p.Recurrence, seriesFloor(p))
	if err != nil {
		return domain.Payment{}, err
	}

	return applyEndCondition(p, next), nil
}

// CompletePayment records a completion and advances the series. The
// completion date becomes the last payment date; for recurring payments the
// next due date is recomputed strictly after it, terminating the series when
// the end date is passed.
func CompletePayment(p domain.Payment, completionDate domain.Date) (domain.Payment, error) {
	p = resolveSchedule(p)
	p.LastPaymentDate = completionDate

	if !p.Recurring {
		return p, nil
	}

	if p.Recurrence == nil {
		return domain.Payment{}, invalidPattern("recurring payment %s has no recurrence rule", p.ID)
	}

	next, err := NextDueDate(p.StartDate, *p.Recurrence, completionDate)
	if err != nil {
		return domain.Payment{}, err
	}

	return applyEndCondition(p, next), nil
}

// NormalizeAll applies NormalizePayment to every element, e.g. after a full
// payment set is restored from storage.
func NormalizeAll(payments []domain.Payment) ([]domain.Payment, error) {
	normalized := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		n, err := NormalizePayment(p)
		if err != nil {
			return nil, fmt.Errorf("payment %s: %w", p.ID, err)
		}
		normalized = append(normalized, n)
	}
	return normalized, nil
}

// resolveSchedule picks the authoritative recurrence representation. A
// present pattern always wins; otherwise one is derived from the legacy
// frequency with the start date as anchor. Payments with neither stay as
// they are (one-shot, or rejected later if flagged recurring).
func resolveSchedule(p domain.Payment) domain.Payment {
	if p.Recurrence == nil && p.LegacyFrequency != "" {
		pattern := LegacyToPattern(p.LegacyFrequency, p.StartDate)
		p.Recurrence = &pattern
	}
	return p
}

// seriesFloor is the exclusive lower bound for the next-due search. A series
// that has never been completed may be due on its start date itself, so the
// floor sits one day before it.
func seriesFloor(p domain.Payment) domain.Date {
	if !p.LastPaymentDate.IsEmpty() {
		return p.LastPaymentDate
	}
	return p.StartDate.AddDays(-1)
}

// applyEndCondition stores the computed occurrence, terminating the series
// when it would land past the end date: recurring flips off and the due date
// clamps to the end date.
func applyEndCondition(p domain.Payment, next domain.Date) domain.Payment {
	if !p.EndDate.IsEmpty() && next.After(p.EndDate) {
		p.Recurring = false
		p.NextDueDate = p.EndDate
		return p
	}
	p.NextDueDate = next
	return p
}

// normalizeNonRecurring handles payments whose recurring flag is off. A
// one-shot payment is due on its start date. A payment that still carries an
// exhausted recurrence rule is a terminated series and keeps its due date
// clamped to the end date, which keeps normalization idempotent after
// termination.
func normalizeNonRecurring(p domain.Payment) domain.Payment {
	if p.Recurrence != nil && !p.EndDate.IsEmpty() {
		next, err := NextDueDate(p.StartDate, *p.Recurrence, seriesFloor(p))
		if err == nil && next.After(p.EndDate) {
			p.NextDueDate = p.EndDate
			return p
		}
	}
	p.NextDueDate = p.StartDate
	return p
}
