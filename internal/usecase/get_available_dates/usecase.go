package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
	centreRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/centre"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
)

// UseCase use case поиска доступных дат экзамена в центре
type UseCase struct {
	placeRepo    PlaceRepository
	centreRepo   CentreRepository
	calc         *eligibility.Calculator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	placeRepo PlaceRepository,
	centreRepo CentreRepository,
	rules eligibility.Rules,
	logger Logger,
) *UseCase {
	return &UseCase{
		placeRepo:    placeRepo,
		centreRepo:   centreRepo,
		calc:         eligibility.NewCalculator(rules),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ByCentreID возвращает уникальные даты свободных мест центра в диапазоне
func (uc *UseCase) ByCentreID(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.CentreID <= 0 {
		return nil, fmt.Errorf("%w: centre id must be positive", ErrInvalidInput)
	}

	// 2. Проверяем существование центра
	if _, err := uc.centreRepo.GetByID(ctx, req.CentreID); err != nil {
		if errors.Is(err, centreRepo.ErrCentreNotFound) {
			uc.logger.Warn("GetAvailableDates: centre id=%d not found", req.CentreID)
			return nil, ErrCentreNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get centre id=%d: %v", req.CentreID, err)
		return nil, fmt.Errorf("%w: failed to get centre: %v", ErrInternal, err)
	}

	return uc.listDates(ctx, req.CentreID, req.Begin, req.End)
}

// ByCentreName возвращает уникальные даты свободных мест центра,
// найденного по названию. Без департамента поиск по названию неоднозначен:
// при нескольких совпадениях берется первое, остальные фиксируются в логе
func (uc *UseCase) ByCentreName(ctx context.Context, req *NameRequest) (*Response, error) {
	// 1. Валидация входных данных
	if req.Nom == "" {
		return nil, fmt.Errorf("%w: centre name is required", ErrInvalidInput)
	}

	// 2. Определяем центр по названию (и департаменту, если задан)
	var centre *domain.Centre

	if req.Departement != "" {
		found, err := uc.centreRepo.FindByNameAndDepartement(ctx, req.Nom, req.Departement)
		if err != nil {
			if errors.Is(err, centreRepo.ErrCentreNotFound) {
				uc.logger.Warn("GetAvailableDates: centre nom=%q departement=%q not found",
					req.Nom, req.Departement)
				return nil, ErrCentreNotFound
			}
			uc.logger.Error("GetAvailableDates: failed to find centre nom=%q departement=%q: %v",
				req.Nom, req.Departement, err)
			return nil, fmt.Errorf("%w: failed to find centre: %v", ErrInternal, err)
		}
		centre = found
	} else {
		matches, err := uc.centreRepo.FindAllByName(ctx, req.Nom)
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed to find centres nom=%q: %v", req.Nom, err)
			return nil, fmt.Errorf("%w: failed to find centres: %v", ErrInternal, err)
		}
		if len(matches) == 0 {
			uc.logger.Warn("GetAvailableDates: centre nom=%q not found", req.Nom)
			return nil, ErrCentreNotFound
		}
		if len(matches) > 1 {
			uc.logger.Warn("GetAvailableDates: centre nom=%q is ambiguous (%d matches), using id=%d",
				req.Nom, len(matches), matches[0].ID)
		}
		centre = matches[0]
	}

	return uc.listDates(ctx, centre.ID, req.Begin, req.End)
}

// ForDate возвращает уникальные даты свободных мест центра в пределах
// одного календарного дня
func (uc *UseCase) ForDate(ctx context.Context, req *DateRequest) (*Response, error) {
	// 1. Валидация входных данных
	if req.CentreID <= 0 {
		return nil, fmt.Errorf("%w: centre id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Проверяем существование центра
	if _, err := uc.centreRepo.GetByID(ctx, req.CentreID); err != nil {
		if errors.Is(err, centreRepo.ErrCentreNotFound) {
			return nil, ErrCentreNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get centre id=%d: %v", req.CentreID, err)
		return nil, fmt.Errorf("%w: failed to get centre: %v", ErrInternal, err)
	}

	// 3. Получаем свободные места на день
	places, err := uc.placeRepo.FindByCentreAndDate(ctx, req.CentreID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to find places, centre=%d, date=%s: %v",
			req.CentreID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to find places: %v", ErrInternal, err)
	}

	return &Response{Dates: distinctDates(places)}, nil
}

// listDates разбирает границы диапазона и собирает уникальные даты
func (uc *UseCase) listDates(ctx context.Context, centreID int64, beginRaw, endRaw string) (*Response, error) {
	now := uc.timeProvider.Now()

	// Нижняя граница по умолчанию - минимальная дата, на которую вообще
	// разрешено бронировать (без учета персонального штрафа кандидата)
	begin := uc.calc.MinBookableDate(now)
	if beginRaw != "" {
		parsed, err := time.Parse(time.RFC3339, beginRaw)
		if err != nil {
			uc.logger.Warn("GetAvailableDates: invalid begin %q, using default %s",
				beginRaw, begin.Format(domain.DateFormat))
		} else if parsed.After(begin) {
			begin = parsed.UTC()
		}
	}

	// Некорректная верхняя граница делает диапазон неограниченным
	var end *time.Time
	if endRaw != "" {
		parsed, err := time.Parse(time.RFC3339, endRaw)
		if err != nil {
			uc.logger.Warn("GetAvailableDates: invalid end %q, treating range as unbounded", endRaw)
		} else {
			utc := parsed.UTC()
			end = &utc
		}
	}

	places, err := uc.placeRepo.FindAvailableByCentre(ctx, centreID, begin, end)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to find places, centre=%d: %v", centreID, err)
		return nil, fmt.Errorf("%w: failed to find places: %v", ErrInternal, err)
	}

	return &Response{Dates: distinctDates(places)}, nil
}

// distinctDates собирает уникальные даты мест: несколько свободных мест
// на один момент времени схлопываются в одну дату
func distinctDates(places []*domain.Place) []string {
	seen := make(map[string]struct{}, len(places))
	dates := make([]string, 0, len(places))

	for _, p := range places {
		key := p.Date.UTC().Format(time.RFC3339)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, key)
	}

	sort.Strings(dates)
	return dates
}
