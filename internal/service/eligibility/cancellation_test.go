package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

func TestCanCancelWithoutPenalty_Boundary(t *testing.T) {
	policy := NewPolicy(Rules{DaysForbidCancel: 3})
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		bookedDate time.Time
		want       bool
	}{
		{
			name:       "well in advance",
			bookedDate: now.AddDate(0, 0, 10),
			want:       true,
		},
		{
			name:       "one second past the cutoff",
			bookedDate: now.AddDate(0, 0, 3).Add(time.Second),
			want:       true,
		},
		{
			// Граница исключается из безштрафной зоны
			name:       "exactly at the cutoff",
			bookedDate: now.AddDate(0, 0, 3),
			want:       false,
		},
		{
			name:       "inside the forbidden window",
			bookedDate: now.AddDate(0, 0, 1),
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanCancelWithoutPenalty(tt.bookedDate, now))
		})
	}
}

func TestEvaluateCancellation_EarlyCancellationNoPenalty(t *testing.T) {
	policy := NewPolicy(Rules{DaysForbidCancel: 7, TimeoutToRetry: 45})
	now := date(2024, time.May, 1)
	booked := date(2024, time.June, 1)

	outcome, err := policy.EvaluateCancellation(&domain.Candidat{}, booked, now)
	require.NoError(t, err)

	assert.False(t, outcome.Penalized)
	assert.Nil(t, outcome.NewCanBookAfter)
}

func TestEvaluateCancellation_LateCancellationPenalty(t *testing.T) {
	policy := NewPolicy(Rules{DaysForbidCancel: 7, TimeoutToRetry: 45})
	now := date(2024, time.May, 1)
	booked := date(2024, time.May, 3)

	outcome, err := policy.EvaluateCancellation(&domain.Candidat{}, booked, now)
	require.NoError(t, err)

	require.True(t, outcome.Penalized)
	require.NotNil(t, outcome.NewCanBookAfter)
	// Штраф отсчитывается от даты брони: конец дня + timeoutToRetry
	assert.Equal(t, domain.EndOfDay(booked).AddDate(0, 0, 45), *outcome.NewCanBookAfter)
}

func TestEvaluateCancellation_KeepsLaterExistingPenalty(t *testing.T) {
	policy := NewPolicy(Rules{DaysForbidCancel: 7, TimeoutToRetry: 45})
	now := date(2024, time.May, 1)
	booked := date(2024, time.May, 3)
	existing := date(2025, time.January, 1)

	outcome, err := policy.EvaluateCancellation(&domain.Candidat{CanBookAfter: &existing}, booked, now)
	require.NoError(t, err)

	require.True(t, outcome.Penalized)
	assert.Equal(t, existing, *outcome.NewCanBookAfter)
}

func TestEvaluateCancellation_MissingInputs(t *testing.T) {
	policy := NewPolicy(Rules{DaysForbidCancel: 7})

	_, err := policy.EvaluateCancellation(nil, date(2024, time.May, 3), date(2024, time.May, 1))
	assert.ErrorIs(t, err, ErrMissingCandidat)

	_, err = policy.EvaluateCancellation(&domain.Candidat{}, time.Time{}, date(2024, time.May, 1))
	assert.ErrorIs(t, err, ErrMissingDatePassage)
}

func TestLastDateToCancel(t *testing.T) {
	policy := NewPolicy(Rules{DaysForbidCancel: 7})
	booked := time.Date(2024, time.May, 20, 14, 30, 0, 0, time.UTC)

	got := policy.LastDateToCancel(booked)

	// Дата без компонента времени
	assert.Equal(t, date(2024, time.May, 13), got)
}

func TestIsSameReservation(t *testing.T) {
	resaDate := time.Date(2024, time.May, 20, 10, 30, 0, 0, time.UTC)
	place := &domain.Place{ID: 1, CentreID: 42, Date: resaDate}

	t.Run("same centre and exact same date", func(t *testing.T) {
		assert.True(t, IsSameReservation(42, resaDate, place))
	})

	t.Run("one second difference is a different slot", func(t *testing.T) {
		assert.False(t, IsSameReservation(42, resaDate.Add(time.Second), place))
		assert.False(t, IsSameReservation(42, resaDate.Add(-time.Second), place))
	})

	t.Run("different centre", func(t *testing.T) {
		assert.False(t, IsSameReservation(43, resaDate, place))
	})

	t.Run("no existing place", func(t *testing.T) {
		assert.False(t, IsSameReservation(42, resaDate, nil))
	})
}
