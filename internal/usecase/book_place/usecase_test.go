package book_place

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candilib/DTE-BookingService/internal/domain"
	candidatRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/candidat"
	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
)

// Фейки репозиториев для тестирования usecase

type fakePlaceRepo struct {
	booked       *domain.BookedPlace
	assignResult *domain.Place
	assignErr    error
	released     []int64
	assignCalls  int
}

func (f *fakePlaceRepo) FindBookedByCandidat(_ context.Context, _ int64) (*domain.BookedPlace, error) {
	if f.booked == nil {
		return nil, placeRepo.ErrPlaceNotFound
	}
	return f.booked, nil
}

func (f *fakePlaceRepo) ConditionalAssign(_ context.Context, centreID int64, date time.Time, candidatID int64) (*domain.Place, error) {
	f.assignCalls++
	if f.assignErr != nil {
		return nil, f.assignErr
	}
	if f.assignResult != nil {
		return f.assignResult, nil
	}
	return &domain.Place{ID: 100, CentreID: centreID, Date: date, BookedBy: &candidatID}, nil
}

func (f *fakePlaceRepo) Release(_ context.Context, placeID int64) error {
	f.released = append(f.released, placeID)
	return nil
}

type fakeCandidatRepo struct {
	candidat       *domain.Candidat
	updatedPenalty *time.Time
}

func (f *fakeCandidatRepo) GetByID(_ context.Context, id int64) (*domain.Candidat, error) {
	if f.candidat == nil || f.candidat.ID != id {
		return nil, candidatRepo.ErrCandidatNotFound
	}
	return f.candidat, nil
}

func (f *fakeCandidatRepo) UpdateCanBookAfter(_ context.Context, _ int64, v time.Time) (bool, error) {
	f.updatedPenalty = &v
	return true, nil
}

type fakeCentreRepo struct{}

func (f *fakeCentreRepo) GetByID(_ context.Context, id int64) (*domain.Centre, error) {
	return &domain.Centre{ID: id, Nom: "Rosny sous bois", Departement: "93"}, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testRules = eligibility.Rules{DelayToBook: 7, TimeoutToRetry: 45, DaysForbidCancel: 7}

func newTestUseCase(places *fakePlaceRepo, candidats *fakeCandidatRepo, now time.Time) *UseCase {
	uc := NewUseCase(places, candidats, &fakeCentreRepo{}, testRules, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{t: now}
	return uc
}

func TestExecute_BooksFreePlace(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	resaDate := time.Date(2024, time.June, 3, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, now)

	resp, err := uc.Execute(context.Background(), &Request{CandidatID: 7, CentreID: 42, Date: resaDate})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.CentreID)
	assert.Equal(t, resaDate, resp.Date)
	// Последний день безштрафной отмены: дата экзамена - daysForbidCancel, без времени
	assert.Equal(t, time.Date(2024, time.May, 27, 0, 0, 0, 0, time.UTC), resp.LastDateToCancel)
}

func TestExecute_RejectsDateInsideBookingWindow(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	// Дата внутри окна delayToBook=7
	resaDate := time.Date(2024, time.May, 4, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, now)

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 7, CentreID: 42, Date: resaDate})

	assert.ErrorIs(t, err, ErrCandidatNotEligible)
	assert.Zero(t, places.assignCalls)
}

func TestExecute_RejectsDateBeforeCooldownEnd(t *testing.T) {
	// Кандидат провалил экзамен 2018-10-12, timeoutToRetry=90:
	// штраф действует до конца дня 2019-01-10
	canBookAfter := domain.EndOfDay(time.Date(2019, time.January, 10, 0, 0, 0, 0, time.UTC))
	now := time.Date(2018, time.November, 1, 10, 0, 0, 0, time.UTC)

	places := &fakePlaceRepo{}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7, CanBookAfter: &canBookAfter}}
	uc := newTestUseCase(places, candidats, now)

	t.Run("before cooldown end is rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			CandidatID: 7,
			CentreID:   42,
			Date:       time.Date(2019, time.January, 5, 8, 30, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrCandidatNotEligible)
	})

	t.Run("right after cooldown end is permitted", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			CandidatID: 7,
			CentreID:   42,
			Date:       time.Date(2019, time.January, 11, 8, 30, 0, 0, time.UTC),
		})
		assert.NoError(t, err)
	})
}

func TestExecute_ConflictWhenNoFreePlace(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

	places := &fakePlaceRepo{assignErr: placeRepo.ErrPlaceAlreadyBooked}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, now)

	_, err := uc.Execute(context.Background(), &Request{
		CandidatID: 7,
		CentreID:   42,
		Date:       time.Date(2024, time.June, 3, 8, 30, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrPlaceNotAvailable)
}

func TestExecute_SameReservationRejected(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	resaDate := time.Date(2024, time.June, 3, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{booked: &domain.BookedPlace{
		Place: domain.Place{ID: 55, CentreID: 42, Date: resaDate},
	}}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, now)

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 7, CentreID: 42, Date: resaDate})

	assert.ErrorIs(t, err, ErrSameReservation)
	assert.Empty(t, places.released)
}

func TestExecute_ChangeReservationReleasesOldPlace(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	oldDate := time.Date(2024, time.June, 3, 8, 30, 0, 0, time.UTC)
	newDate := time.Date(2024, time.June, 10, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{booked: &domain.BookedPlace{
		Place: domain.Place{ID: 55, CentreID: 42, Date: oldDate},
	}}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, now)

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 7, CentreID: 42, Date: newDate})
	require.NoError(t, err)

	assert.Equal(t, []int64{55}, places.released)
	// Старая бронь отменена заранее - штраф не применяется
	assert.Nil(t, candidats.updatedPenalty)
}

func TestExecute_LateChangeAppliesPenalty(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	// Старая бронь через 3 дня - внутри окна daysForbidCancel=7
	oldDate := time.Date(2024, time.May, 4, 8, 30, 0, 0, time.UTC)
	// Новая дата за пределами нового штрафа (конец дня 2024-05-04 + 45 дней)
	newDate := time.Date(2024, time.July, 1, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{booked: &domain.BookedPlace{
		Place: domain.Place{ID: 55, CentreID: 42, Date: oldDate},
	}}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, now)

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 7, CentreID: 42, Date: newDate})
	require.NoError(t, err)

	require.NotNil(t, candidats.updatedPenalty)
	assert.Equal(t, domain.EndOfDay(oldDate).AddDate(0, 0, 45), *candidats.updatedPenalty)
	assert.Equal(t, []int64{55}, places.released)
}

func TestExecute_LateChangeInsideNewPenaltyRejected(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	oldDate := time.Date(2024, time.May, 4, 8, 30, 0, 0, time.UTC)
	// Новая дата попадает внутрь штрафа, который возник бы при смене
	newDate := time.Date(2024, time.May, 20, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{booked: &domain.BookedPlace{
		Place: domain.Place{ID: 55, CentreID: 42, Date: oldDate},
	}}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, now)

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 7, CentreID: 42, Date: newDate})

	assert.ErrorIs(t, err, ErrCandidatNotEligible)
	// Ничего не изменено: старая бронь на месте, штраф не записан
	assert.Empty(t, places.released)
	assert.Nil(t, candidats.updatedPenalty)
}
