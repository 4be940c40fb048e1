package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
)

func TestResolveReminders(t *testing.T) {
	due := date(2024, time.March, 15)

	tests := []struct {
		name     string
		specs    domain.ReminderSet
		expected []domain.Date
	}{
		{
			name:     "empty set",
			specs:    domain.NewReminderSet(),
			expected: []domain.Date{},
		},
		{
			name:     "on day only",
			specs:    domain.NewReminderSet(domain.ReminderSpec{Kind: domain.ReminderOnDay}),
			expected: []domain.Date{due},
		},
		{
			name: "mixed specs sorted ascending with duplicates collapsed",
			specs: domain.NewReminderSet(
				domain.ReminderSpec{Kind: domain.ReminderOnDay},
				domain.ReminderSpec{Kind: domain.ReminderBefore, Days: 3},
				domain.ReminderSpec{Kind: domain.ReminderBefore, Days: 3},
			),
			expected: []domain.Date{date(2024, time.March, 12), due},
		},
		{
			name: "before zero collapses onto the due date",
			specs: domain.NewReminderSet(
				domain.ReminderSpec{Kind: domain.ReminderOnDay},
				domain.ReminderSpec{Kind: domain.ReminderBefore, Days: 0},
			),
			expected: []domain.Date{due},
		},
		{
			name: "offsets crossing a month boundary",
			specs: domain.NewReminderSet(
				domain.ReminderSpec{Kind: domain.ReminderBefore, Days: 20},
				domain.ReminderSpec{Kind: domain.ReminderBefore, Days: 7},
			),
			expected: []domain.Date{date(2024, time.February, 24), date(2024, time.March, 8)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := ResolveReminders(due, tt.specs)
			require.Len(t, dates, len(tt.expected))
			for i, expected := range tt.expected {
				assert.True(t, dates[i].Equal(expected), "index %d: expected %s, got %s", i, expected, dates[i])
			}
		})
	}
}

func TestReminderSetSemantics(t *testing.T) {
	set := domain.NewReminderSet(
		domain.ReminderSpec{Kind: domain.ReminderBefore, Days: 3},
		domain.ReminderSpec{Kind: domain.ReminderBefore, Days: 3},
		domain.ReminderSpec{Kind: domain.ReminderOnDay},
	)

	assert.Len(t, set, 2)
	assert.True(t, set.Contains(domain.ReminderSpec{Kind: domain.ReminderBefore, Days: 3}))

	set.Add(domain.ReminderSpec{Kind: domain.ReminderOnDay})
	assert.Len(t, set, 2)

	specs := set.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, domain.ReminderBefore, specs[0].Kind)
	assert.Equal(t, domain.ReminderOnDay, specs[1].Kind)
}
