package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

func weeklyOn(days ...int) *domain.RecurrencePattern {
	return &domain.RecurrencePattern{
		Frequency:  domain.FrequencyWeekly,
		Interval:   1,
		WeeklyDays: days,
	}
}

func TestNormalizePaymentOneShot(t *testing.T) {
	p := domain.Payment{
		ID:        uuid.New(),
		Name:      "car registration",
		StartDate: date(2024, time.June, 1),
	}

	normalized, err := NormalizePayment(p)
	require.NoError(t, err)
	assert.False(t, normalized.Recurring)
	assert.True(t, normalized.NextDueDate.Equal(p.StartDate))
}

func TestNormalizePaymentFirstOccurrenceOnStartDate(t *testing.T) {
	// Start date is a Monday and the pattern fires on Mondays: the very first
	// due date is the start date itself, not a week later.
	start := date(2024, time.March, 4)
	p := domain.Payment{
		ID:         uuid.New(),
		Recurring:  true,
		Recurrence: weeklyOn(1),
		StartDate:  start,
	}

	normalized, err := NormalizePayment(p)
	require.NoError(t, err)
	assert.True(t, normalized.NextDueDate.Equal(start))
}

func TestNormalizePaymentStartDateOffPattern(t *testing.T) {
	// Start date is a Monday but the pattern fires on Thursdays: first due
	// date is the following Thursday.
	p := domain.Payment{
		ID:         uuid.New(),
		Recurring:  true,
		Recurrence: weeklyOn(4),
		StartDate:  date(2024, time.March, 4),
	}

	normalized, err := NormalizePayment(p)
	require.NoError(t, err)
	assert.True(t, normalized.NextDueDate.Equal(date(2024, time.March, 7)))
}

func TestNormalizePaymentAfterCompletion(t *testing.T) {
	p := domain.Payment{
		ID:              uuid.New(),
		Recurring:       true,
		Recurrence:      weeklyOn(1),
		StartDate:       date(2024, time.March, 4),
		LastPaymentDate: date(2024, time.March, 11),
	}

	normalized, err := NormalizePayment(p)
	require.NoError(t, err)
	assert.True(t, normalized.NextDueDate.Equal(date(2024, time.March, 18)))
}

func TestNormalizePaymentDerivesLegacyFrequency(t *testing.T) {
	p := domain.Payment{
		ID:              uuid.New(),
		Recurring:       true,
		LegacyFrequency: domain.LegacyFortnightly,
		StartDate:       date(2024, time.March, 4),
	}

	normalized, err := NormalizePayment(p)
	require.NoError(t, err)
	require.NotNil(t, normalized.Recurrence)
	assert.Equal(t, domain.FrequencyWeekly, normalized.Recurrence.Frequency)
	assert.Equal(t, 2, normalized.Recurrence.Interval)
	assert.True(t, normalized.NextDueDate.Equal(date(2024, time.March, 4)))
}

func TestNormalizePaymentRecurringWithoutRule(t *testing.T) {
	p := domain.Payment{
		ID:        uuid.New(),
		Recurring: true,
		StartDate: date(2024, time.March, 4),
	}

	_, err := NormalizePayment(p)
	assert.ErrorIs(t, err, ErrInvalidRecurrencePattern)
}

func TestNormalizePaymentIdempotent(t *testing.T) {
	payments := []domain.Payment{
		{
			ID:        uuid.New(),
			StartDate: date(2024, time.June, 1),
		},
		{
			ID:         uuid.New(),
			Recurring:  true,
			Recurrence: weeklyOn(1, 4),
			StartDate:  date(2024, time.March, 4),
		},
		{
			ID:              uuid.New(),
			Recurring:       true,
			LegacyFrequency: domain.LegacyQuarterly,
			StartDate:       date(2024, time.January, 31),
			LastPaymentDate: date(2024, time.April, 30),
		},
		{
			// Terminates immediately: weekly on Mondays, ends before the
			// second occurrence.
			ID:              uuid.New(),
			Recurring:       true,
			Recurrence:      weeklyOn(1),
			StartDate:       date(2024, time.March, 4),
			LastPaymentDate: date(2024, time.March, 4),
			EndDate:         date(2024, time.March, 8),
		},
	}

	for _, p := range payments {
		once, err := NormalizePayment(p)
		require.NoError(t, err)
		twice, err := NormalizePayment(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "normalization is not idempotent for %s", p.ID)
	}
}

func TestCompletePaymentAdvancesSeries(t *testing.T) {
	p := domain.Payment{
		ID:          uuid.New(),
		Recurring:   true,
		Recurrence:  weeklyOn(1),
		StartDate:   date(2024, time.March, 4),
		NextDueDate: date(2024, time.March, 4),
	}

	completed, err := CompletePayment(p, date(2024, time.March, 4))
	require.NoError(t, err)
	assert.True(t, completed.LastPaymentDate.Equal(date(2024, time.March, 4)))
	assert.True(t, completed.NextDueDate.Equal(date(2024, time.March, 11)))
	assert.True(t, completed.Recurring)
}

func TestCompletePaymentTerminatesSeries(t *testing.T) {
	// Weekly on Mondays, end date ten days after the start with no occurrence
	// on the boundary: completing the second occurrence pushes the next one
	// past the end date, so the series terminates and the due date clamps.
	start := date(2024, time.March, 4)
	end := start.AddDays(10) // 2024-03-14, a Thursday
	p := domain.Payment{
		ID:          uuid.New(),
		Recurring:   true,
		Recurrence:  weeklyOn(1),
		StartDate:   start,
		EndDate:     end,
		NextDueDate: date(2024, time.March, 11),
	}

	completed, err := CompletePayment(p, date(2024, time.March, 11))
	require.NoError(t, err)
	assert.False(t, completed.Recurring)
	assert.True(t, completed.NextDueDate.Equal(end))

	// Renormalizing the terminated record must not resurrect the series.
	renormalized, err := NormalizePayment(completed)
	require.NoError(t, err)
	assert.Equal(t, completed, renormalized)
}

func TestCompletePaymentNonRecurring(t *testing.T) {
	p := domain.Payment{
		ID:          uuid.New(),
		StartDate:   date(2024, time.June, 1),
		NextDueDate: date(2024, time.June, 1),
	}

	completed, err := CompletePayment(p, date(2024, time.June, 1))
	require.NoError(t, err)
	assert.True(t, completed.LastPaymentDate.Equal(date(2024, time.June, 1)))
	assert.True(t, completed.NextDueDate.Equal(date(2024, time.June, 1)))
}

func TestNormalizeAll(t *testing.T) {
	payments := []domain.Payment{
		{ID: uuid.New(), StartDate: date(2024, time.June, 1)},
		{ID: uuid.New(), Recurring: true, Recurrence: weeklyOn(1), StartDate: date(2024, time.March, 4)},
	}

	normalized, err := NormalizeAll(payments)
	require.NoError(t, err)
	require.Len(t, normalized, 2)
	assert.True(t, normalized[0].NextDueDate.Equal(date(2024, time.June, 1)))
	assert.True(t, normalized[1].NextDueDate.Equal(date(2024, time.March, 4)))

	payments = append(payments, domain.Payment{ID: uuid.New(), Recurring: true, StartDate: date(2024, time.June, 1)})
	_, err = NormalizeAll(payments)
	assert.ErrorIs(t, err, ErrInvalidRecurrencePattern)
}
