package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candilib/DTE-BookingService/internal/domain"
	"github.com/candilib/DTE-BookingService/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBeginDateAuthorize_NoCanBookAfter(t *testing.T) {
	calc := NewCalculator(Rules{DelayToBook: 30})
	now := date(2024, time.January, 1)

	got := calc.BeginDateAuthorize(&domain.Candidat{}, now)

	assert.Equal(t, date(2024, time.January, 31), got)
}

func TestBeginDateAuthorize_StoredDateLaterThanDefault(t *testing.T) {
	calc := NewCalculator(Rules{DelayToBook: 30})
	now := date(2024, time.January, 1)
	stored := date(2024, time.March, 15)

	got := calc.BeginDateAuthorize(&domain.Candidat{CanBookAfter: &stored}, now)

	assert.Equal(t, stored, got)
}

func TestBeginDateAuthorize_StoredDateEarlierThanDefault(t *testing.T) {
	calc := NewCalculator(Rules{DelayToBook: 30})
	now := date(2024, time.January, 1)
	stored := date(2024, time.January, 10)

	got := calc.BeginDateAuthorize(&domain.Candidat{CanBookAfter: &stored}, now)

	// Дата допуска не может быть раньше дефолтного окна
	assert.Equal(t, date(2024, time.January, 31), got)
}

func TestBeginDateAuthorize_InvalidStoredDateIgnored(t *testing.T) {
	calc := NewCalculator(Rules{DelayToBook: 30})
	now := date(2024, time.January, 1)

	got := calc.BeginDateAuthorize(&domain.Candidat{CanBookAfter: ptr.Ptr(time.Time{})}, now)

	assert.Equal(t, date(2024, time.January, 31), got)
}

func TestCanBookAfterFailure_EndOfDayPlusTimeout(t *testing.T) {
	calc := NewCalculator(Rules{TimeoutToRetry: 90})
	failure := date(2018, time.October, 12)

	got, err := calc.CanBookAfterFailure(&domain.Candidat{}, failure)
	require.NoError(t, err)

	// Конец дня 2018-10-12 + 90 дней = конец дня 2019-01-10
	assert.Equal(t, 2019, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 10, got.Day())
	assert.Equal(t, domain.EndOfDay(date(2019, time.January, 10)), got)
}

func TestCanBookAfterFailure_KeepsLaterExistingPenalty(t *testing.T) {
	calc := NewCalculator(Rules{TimeoutToRetry: 90})
	existing := date(2019, time.June, 1)
	candidat := &domain.Candidat{CanBookAfter: &existing}

	got, err := calc.CanBookAfterFailure(candidat, date(2018, time.October, 12))
	require.NoError(t, err)

	// Провал не сокращает уже действующий более длинный штраф
	assert.Equal(t, existing, got)
}

func TestCanBookAfterFailure_ReplacesEarlierExistingPenalty(t *testing.T) {
	calc := NewCalculator(Rules{TimeoutToRetry: 90})
	existing := date(2018, time.November, 1)
	candidat := &domain.Candidat{CanBookAfter: &existing}

	got, err := calc.CanBookAfterFailure(candidat, date(2018, time.October, 12))
	require.NoError(t, err)

	assert.Equal(t, domain.EndOfDay(date(2019, time.January, 10)), got)
}

func TestCanBookAfterFailure_MissingDate(t *testing.T) {
	calc := NewCalculator(Rules{TimeoutToRetry: 90})

	_, err := calc.CanBookAfterFailure(&domain.Candidat{}, time.Time{})

	assert.ErrorIs(t, err, ErrMissingDatePassage)
}

func TestCanBookAfterFailure_MissingCandidat(t *testing.T) {
	calc := NewCalculator(Rules{TimeoutToRetry: 90})

	_, err := calc.CanBookAfterFailure(nil, date(2018, time.October, 12))

	assert.ErrorIs(t, err, ErrMissingCandidat)
}

// Свойство монотонности: какова бы ни была последовательность вычислений,
// CanBookAfter никогда не становится раньше уже установленного значения
func TestCanBookAfter_MonotonicOverSequenceOfFailures(t *testing.T) {
	calc := NewCalculator(Rules{TimeoutToRetry: 45})
	candidat := &domain.Candidat{}

	failures := []time.Time{
		date(2024, time.March, 10),
		date(2024, time.January, 5), // более ранний провал приходит позже
		date(2024, time.June, 20),
		date(2024, time.February, 1),
	}

	var prev time.Time
	for _, f := range failures {
		got, err := calc.CanBookAfterFailure(candidat, f)
		require.NoError(t, err)
		assert.False(t, got.Before(prev), "canBookAfter moved backwards: %s < %s", got, prev)

		candidat.CanBookAfter = &got
		prev = got
	}
}
