package book_place

import (
	"context"
	"errors"
	"fmt"

	"github.com/candilib/DTE-BookingService/internal/domain"
	candidatRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/candidat"
	centreRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/centre"
	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
)

// UseCase use case бронирования места экзамена
type UseCase struct {
	placeRepo    PlaceRepository
	candidatRepo CandidatRepository
	centreRepo   CentreRepository
	calc         *eligibility.Calculator
	policy       *eligibility.Policy
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	placeRepo PlaceRepository,
	candidatRepo CandidatRepository,
	centreRepo CentreRepository,
	rules eligibility.Rules,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		placeRepo:    placeRepo,
		candidatRepo: candidatRepo,
		centreRepo:   centreRepo,
		calc:         eligibility.NewCalculator(rules),
		policy:       eligibility.NewPolicy(rules),
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case бронирования места
// Закрепление места за кандидатом - одиночный условный UPDATE: при двух
// конкурентных запросах на последнее место успешным будет ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookPlace: candidat=%d, centre=%d, date=%s",
		req.CandidatID, req.CentreID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookPlace: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем кандидата
	cand, err := uc.candidatRepo.GetByID(ctx, req.CandidatID)
	if err != nil {
		if errors.Is(err, candidatRepo.ErrCandidatNotFound) {
			uc.logger.Warn("BookPlace: candidat id=%d not found", req.CandidatID)
			return nil, ErrCandidatNotFound
		}
		uc.logger.Error("BookPlace: failed to get candidat id=%d: %v", req.CandidatID, err)
		return nil, fmt.Errorf("%w: failed to get candidat: %v", ErrInternal, err)
	}

	// 4. Проверяем существование центра
	if _, err := uc.centreRepo.GetByID(ctx, req.CentreID); err != nil {
		if errors.Is(err, centreRepo.ErrCentreNotFound) {
			uc.logger.Warn("BookPlace: centre id=%d not found", req.CentreID)
			return nil, ErrCentreNotFound
		}
		uc.logger.Error("BookPlace: failed to get centre id=%d: %v", req.CentreID, err)
		return nil, fmt.Errorf("%w: failed to get centre: %v", ErrInternal, err)
	}

	// 5. Проверяем допуск: запрошенная дата не раньше даты допуска кандидата
	beginDate := uc.calc.BeginDateAuthorize(cand, now)
	if req.Date.Before(beginDate) {
		uc.logger.Warn("BookPlace: candidat id=%d not eligible before %s, requested %s",
			req.CandidatID, beginDate.Format(domain.DateFormat), req.Date.Format(domain.DateFormat))
		return nil, ErrCandidatNotEligible
	}

	// 6. Проверяем текущую бронь кандидата
	existing, err := uc.placeRepo.FindBookedByCandidat(ctx, req.CandidatID)
	if err != nil && !errors.Is(err, placeRepo.ErrPlaceNotFound) {
		uc.logger.Error("BookPlace: failed to get current reservation for candidat id=%d: %v",
			req.CandidatID, err)
		return nil, fmt.Errorf("%w: failed to get current reservation: %v", ErrInternal, err)
	}

	var penalty *eligibility.CancellationOutcome

	if existing != nil {
		// 6.1. Тот же слот - повторное бронирование не имеет смысла
		if eligibility.IsSameReservation(req.CentreID, req.Date, &existing.Place) {
			uc.logger.Warn("BookPlace: candidat id=%d already holds place id=%d", req.CandidatID, existing.ID)
			return nil, ErrSameReservation
		}

		// 6.2. Смена брони равносильна отмене старой: оцениваем штраф
		outcome, err := uc.policy.EvaluateCancellation(cand, existing.Date, now)
		if err != nil {
			uc.logger.Error("BookPlace: failed to evaluate cancellation for candidat id=%d: %v",
				req.CandidatID, err)
			return nil, fmt.Errorf("%w: failed to evaluate cancellation: %v", ErrInternal, err)
		}

		// 6.3. Если штраф закрывает запрошенную дату - отказываем до любых изменений
		if outcome.Penalized && req.Date.Before(*outcome.NewCanBookAfter) {
			uc.logger.Warn("BookPlace: candidat id=%d requested date inside new penalty (until %s)",
				req.CandidatID, outcome.NewCanBookAfter.Format(domain.DateFormat))
			return nil, ErrCandidatNotEligible
		}
		penalty = &outcome
	}

	// 7. Выполняем операции с БД в сериализуемой транзакции
	var result *domain.Place

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Освобождаем старое место и применяем штраф за позднюю смену
		if existing != nil {
			if err := uc.placeRepo.Release(txCtx, existing.ID); err != nil {
				uc.logger.Error("BookPlace: failed to release place id=%d: %v", existing.ID, err)
				return fmt.Errorf("%w: failed to release previous place: %v", ErrInternal, err)
			}

			if penalty != nil && penalty.Penalized {
				updated, err := uc.candidatRepo.UpdateCanBookAfter(txCtx, cand.ID, *penalty.NewCanBookAfter)
				if err != nil {
					uc.logger.Error("BookPlace: failed to persist penalty for candidat id=%d: %v",
						cand.ID, err)
					return fmt.Errorf("%w: failed to persist penalty: %v", ErrInternal, err)
				}
				uc.logger.Info("BookPlace: penalty applied to candidat id=%d (updated=%t, until %s)",
					cand.ID, updated, penalty.NewCanBookAfter.Format(domain.DateFormat))
			}
		}

		// 7.2. Атомарно закрепляем свободное место за кандидатом
		place, err := uc.placeRepo.ConditionalAssign(txCtx, req.CentreID, req.Date, req.CandidatID)
		if err != nil {
			if errors.Is(err, placeRepo.ErrPlaceAlreadyBooked) {
				return ErrPlaceNotAvailable
			}
			uc.logger.Error("BookPlace: failed to assign place: %v", err)
			return fmt.Errorf("%w: failed to assign place: %v", ErrInternal, err)
		}

		result = place
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrPlaceNotAvailable) {
			uc.logger.Warn("BookPlace: no free place, centre=%d, date=%s",
				req.CentreID, req.Date.Format(domain.DateFormat))
		}
		return nil, err
	}

	uc.logger.Info("BookPlace: successfully booked place id=%d for candidat id=%d",
		result.ID, req.CandidatID)

	return &Response{
		PlaceID:          result.ID,
		CentreID:         result.CentreID,
		Date:             result.Date,
		LastDateToCancel: uc.policy.LastDateToCancel(result.Date),
	}, nil
}
