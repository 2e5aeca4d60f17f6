package sync_aurige

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candilib/DTE-BookingService/internal/domain"
	candidatRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/candidat"
	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
)

type fakeCandidatRepo struct {
	candidats      map[string]*domain.Candidat // по codeNeph
	updatedPenalty map[int64]time.Time
	validated      map[int64]bool
}

func (f *fakeCandidatRepo) FindByNephAndName(_ context.Context, codeNeph, nomNaissance string) (*domain.Candidat, error) {
	c, ok := f.candidats[codeNeph]
	if !ok || c.NomNaissance != nomNaissance {
		return nil, candidatRepo.ErrCandidatNotFound
	}
	return c, nil
}

func (f *fakeCandidatRepo) UpdateCanBookAfter(_ context.Context, id int64, v time.Time) (bool, error) {
	if f.updatedPenalty == nil {
		f.updatedPenalty = make(map[int64]time.Time)
	}
	f.updatedPenalty[id] = v
	return true, nil
}

func (f *fakeCandidatRepo) MarkValidated(_ context.Context, id int64, validated bool) error {
	if f.validated == nil {
		f.validated = make(map[int64]bool)
	}
	f.validated[id] = validated
	return nil
}

type fakePlaceRepo struct {
	booked   map[int64]*domain.BookedPlace // по candidatID
	released []int64
}

func (f *fakePlaceRepo) FindBookedByCandidat(_ context.Context, candidatID int64) (*domain.BookedPlace, error) {
	b, ok := f.booked[candidatID]
	if !ok {
		return nil, placeRepo.ErrPlaceNotFound
	}
	return b, nil
}

func (f *fakePlaceRepo) Release(_ context.Context, placeID int64) error {
	f.released = append(f.released, placeID)
	return nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testRules = eligibility.Rules{DelayToBook: 7, TimeoutToRetry: 45, DaysForbidCancel: 7}

func newTestUseCase(candidats *fakeCandidatRepo, places *fakePlaceRepo, notifier Notifier) *UseCase {
	return NewUseCase(candidats, places, testRules, &fakeTxManager{}, notifier, nopLogger{})
}

func TestParseBatch(t *testing.T) {
	raw := `[
		{
			"codeNeph": "093123456789",
			"nomNaissance": "DUPONT",
			"email": "dupont@example.com",
			"dateReussiteETG": "2023-01-15",
			"nbEchecsPratiques": "1",
			"dateDernierNonReussite": "2024-04-20",
			"objetDernierNonReussite": "echec",
			"reussitePratique": "",
			"candidatExistant": "OK"
		}
	]`

	records, err := ParseBatch(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "093123456789", records[0].CodeNeph)
	assert.Equal(t, "echec", records[0].ObjetDernierNonReussite)
}

func TestParseBatch_Empty(t *testing.T) {
	_, err := ParseBatch(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = ParseBatch(strings.NewReader(`pas du json`))
	assert.ErrorIs(t, err, ErrInvalidBatch)
}

func TestExecute_RejectedByAurige(t *testing.T) {
	candidats := &fakeCandidatRepo{}
	uc := newTestUseCase(candidats, &fakePlaceRepo{}, &fakeNotifier{})

	report, err := uc.Execute(context.Background(), []CandidatAurige{
		{CodeNeph: "1", NomNaissance: "DUPONT", CandidatExistant: domain.AurigeNOK},
		{CodeNeph: "2", NomNaissance: "MARTIN", CandidatExistant: domain.AurigeNOKNom},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Rejected)
	assert.Equal(t, StatusRejected, report.Records[0].Status)
	assert.Equal(t, domain.AurigeNOKNom, report.Records[1].Details)
}

func TestExecute_FailureAppliesPenaltyAndReleasesPlace(t *testing.T) {
	cand := &domain.Candidat{ID: 7, CodeNeph: "093123", NomNaissance: "DUPONT"}
	// Бронь на дату внутри будущего штрафного периода
	bookedDate := time.Date(2018, time.November, 20, 8, 30, 0, 0, time.UTC)

	candidats := &fakeCandidatRepo{candidats: map[string]*domain.Candidat{"093123": cand}}
	places := &fakePlaceRepo{booked: map[int64]*domain.BookedPlace{
		7: {Place: domain.Place{ID: 55, CentreID: 42, Date: bookedDate}},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(candidats, places, notifier)

	report, err := uc.Execute(context.Background(), []CandidatAurige{{
		CodeNeph:                "093123",
		NomNaissance:            "DUPONT",
		CandidatExistant:        domain.AurigeOK,
		DateDernierNonReussite:  "2018-10-12",
		ObjetDernierNonReussite: domain.AurigeEchec,
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Penalized)
	assert.Equal(t, StatusPenalized, report.Records[0].Status)

	// Штраф: конец дня 2018-10-12 + 45 дней
	want := domain.EndOfDay(time.Date(2018, time.October, 12, 0, 0, 0, 0, time.UTC)).AddDate(0, 0, 45)
	assert.Equal(t, want, candidats.updatedPenalty[7])

	// Бронь попала внутрь штрафа - место освобождено, уведомление отправлено
	assert.Equal(t, []int64{55}, places.released)
	assert.Equal(t, 1, notifier.calls)
}

func TestExecute_FailureKeepsReservationOutsidePenalty(t *testing.T) {
	cand := &domain.Candidat{ID: 7, CodeNeph: "093123", NomNaissance: "DUPONT"}
	// Бронь на дату после окончания штрафа
	bookedDate := time.Date(2019, time.March, 1, 8, 30, 0, 0, time.UTC)

	candidats := &fakeCandidatRepo{candidats: map[string]*domain.Candidat{"093123": cand}}
	places := &fakePlaceRepo{booked: map[int64]*domain.BookedPlace{
		7: {Place: domain.Place{ID: 55, CentreID: 42, Date: bookedDate}},
	}}
	uc := newTestUseCase(candidats, places, &fakeNotifier{})

	report, err := uc.Execute(context.Background(), []CandidatAurige{{
		CodeNeph:               "093123",
		NomNaissance:           "DUPONT",
		CandidatExistant:       domain.AurigeOK,
		DateDernierNonReussite: "2018-10-12",
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Penalized)
	assert.Empty(t, places.released)
}

func TestExecute_PassedPracticalReleasesReservation(t *testing.T) {
	cand := &domain.Candidat{ID: 7, CodeNeph: "093123", NomNaissance: "DUPONT"}
	candidats := &fakeCandidatRepo{candidats: map[string]*domain.Candidat{"093123": cand}}
	places := &fakePlaceRepo{booked: map[int64]*domain.BookedPlace{
		7: {Place: domain.Place{ID: 55, CentreID: 42, Date: time.Now().UTC()}},
	}}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(candidats, places, notifier)

	report, err := uc.Execute(context.Background(), []CandidatAurige{{
		CodeNeph:         "093123",
		NomNaissance:     "DUPONT",
		CandidatExistant: domain.AurigeOK,
		ReussitePratique: domain.AurigeOK,
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, []int64{55}, places.released)
	// Сдавшему экзамен письмо об отмене не отправляется
	assert.Zero(t, notifier.calls)
}

func TestExecute_CleanRecordValidatesCandidat(t *testing.T) {
	cand := &domain.Candidat{ID: 7, CodeNeph: "093123", NomNaissance: "DUPONT"}
	candidats := &fakeCandidatRepo{candidats: map[string]*domain.Candidat{"093123": cand}}
	uc := newTestUseCase(candidats, &fakePlaceRepo{}, &fakeNotifier{})

	report, err := uc.Execute(context.Background(), []CandidatAurige{{
		CodeNeph:         "093123",
		NomNaissance:     "DUPONT",
		CandidatExistant: domain.AurigeOK,
	}})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Validated)
	assert.True(t, candidats.validated[7])
}

func TestExecute_NotFoundDoesNotStopBatch(t *testing.T) {
	cand := &domain.Candidat{ID: 7, CodeNeph: "093123", NomNaissance: "DUPONT"}
	candidats := &fakeCandidatRepo{candidats: map[string]*domain.Candidat{"093123": cand}}
	uc := newTestUseCase(candidats, &fakePlaceRepo{}, &fakeNotifier{})

	report, err := uc.Execute(context.Background(), []CandidatAurige{
		{CodeNeph: "inconnu", NomNaissance: "PERSONNE", CandidatExistant: domain.AurigeOK},
		{CodeNeph: "093123", NomNaissance: "DUPONT", CandidatExistant: domain.AurigeOK},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.NotFound)
	assert.Equal(t, 1, report.Validated)
}
