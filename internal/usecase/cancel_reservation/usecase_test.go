package cancel_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candilib/DTE-BookingService/internal/domain"
	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
)

type fakePlaceRepo struct {
	booked   *domain.BookedPlace
	released []int64
}

func (f *fakePlaceRepo) FindBookedByCandidat(_ context.Context, _ int64) (*domain.BookedPlace, error) {
	if f.booked == nil {
		return nil, placeRepo.ErrPlaceNotFound
	}
	return f.booked, nil
}

func (f *fakePlaceRepo) Release(_ context.Context, placeID int64) error {
	f.released = append(f.released, placeID)
	return nil
}

type fakeCandidatRepo struct {
	candidat       *domain.Candidat
	updatedPenalty *time.Time
}

func (f *fakeCandidatRepo) GetByID(_ context.Context, _ int64) (*domain.Candidat, error) {
	return f.candidat, nil
}

func (f *fakeCandidatRepo) UpdateCanBookAfter(_ context.Context, _ int64, v time.Time) (bool, error) {
	f.updatedPenalty = &v
	return true, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	err   error
	calls int
}

func (f *fakeNotifier) SendCancelBooking(_ context.Context, _ *domain.Candidat) error {
	f.calls++
	return f.err
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testRules = eligibility.Rules{DelayToBook: 7, TimeoutToRetry: 45, DaysForbidCancel: 7}

func newTestUseCase(places *fakePlaceRepo, candidats *fakeCandidatRepo, notifier Notifier, now time.Time) *UseCase {
	uc := NewUseCase(places, candidats, testRules, &fakeTxManager{}, notifier, nopLogger{})
	uc.timeProvider = &fixedTime{t: now}
	return uc
}

func TestExecute_EarlyCancelWithoutPenalty(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	// Экзамен более чем через daysForbidCancel дней
	bookedDate := time.Date(2024, time.June, 3, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{booked: &domain.BookedPlace{
		Place: domain.Place{ID: 55, CentreID: 42, Date: bookedDate},
	}}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(places, candidats, notifier, now)

	resp, err := uc.Execute(context.Background(), &Request{CandidatID: 7})
	require.NoError(t, err)

	assert.True(t, resp.Statusmail)
	assert.Equal(t, domain.CancelResaWithMailSent, resp.Message)
	assert.Nil(t, resp.CanBookAfter)
	assert.Equal(t, []int64{55}, places.released)
	assert.Nil(t, candidats.updatedPenalty)
	assert.Equal(t, 1, notifier.calls)
}

func TestExecute_LateCancelAppliesPenalty(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	// Экзамен через 3 дня - внутри окна daysForbidCancel=7
	bookedDate := time.Date(2024, time.May, 4, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{booked: &domain.BookedPlace{
		Place: domain.Place{ID: 55, CentreID: 42, Date: bookedDate},
	}}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, &fakeNotifier{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CandidatID: 7})
	require.NoError(t, err)

	// Штраф: конец дня экзамена + timeoutToRetry дней
	want := domain.EndOfDay(bookedDate).AddDate(0, 0, 45)
	require.NotNil(t, resp.CanBookAfter)
	assert.Equal(t, want, *resp.CanBookAfter)
	require.NotNil(t, candidats.updatedPenalty)
	assert.Equal(t, want, *candidats.updatedPenalty)
}

func TestExecute_CancelExactlyAtBoundaryPenalized(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	// Разница ровно daysForbidCancel дней: граница исключается, штраф есть
	bookedDate := now.AddDate(0, 0, 7)

	places := &fakePlaceRepo{booked: &domain.BookedPlace{
		Place: domain.Place{ID: 55, CentreID: 42, Date: bookedDate},
	}}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, &fakeNotifier{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CandidatID: 7})
	require.NoError(t, err)

	assert.NotNil(t, resp.CanBookAfter)
	assert.NotNil(t, candidats.updatedPenalty)
}

func TestExecute_NotifierFailureDoesNotUndoCancellation(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	bookedDate := time.Date(2024, time.June, 3, 8, 30, 0, 0, time.UTC)

	places := &fakePlaceRepo{booked: &domain.BookedPlace{
		Place: domain.Place{ID: 55, CentreID: 42, Date: bookedDate},
	}}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	notifier := &fakeNotifier{err: errors.New("broker unavailable")}
	uc := newTestUseCase(places, candidats, notifier, now)

	resp, err := uc.Execute(context.Background(), &Request{CandidatID: 7})
	require.NoError(t, err)

	// Отмена состоялась, несмотря на отказ публикации
	assert.Equal(t, []int64{55}, places.released)
	assert.False(t, resp.Statusmail)
	assert.Equal(t, domain.CancelResaWithNoMailSent, resp.Message)
}

func TestExecute_NoReservation(t *testing.T) {
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

	places := &fakePlaceRepo{}
	candidats := &fakeCandidatRepo{candidat: &domain.Candidat{ID: 7}}
	uc := newTestUseCase(places, candidats, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), &Request{CandidatID: 7})

	assert.ErrorIs(t, err, ErrNoReservation)
}
