package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/candilib/DTE-BookingService/internal/domain"
	candidatRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/candidat"
	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
)

// UseCase use case отмены бронирования
type UseCase struct {
	placeRepo    PlaceRepository
	candidatRepo CandidatRepository
	policy       *eligibility.Policy
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// notifier может быть nil, если уведомления отключены конфигурацией
func NewUseCase(
	placeRepo PlaceRepository,
	candidatRepo CandidatRepository,
	rules eligibility.Rules,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		placeRepo:    placeRepo,
		candidatRepo: candidatRepo,
		policy:       eligibility.NewPolicy(rules),
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет отмену бронирования кандидата.
// Освобождение места и фиксация штрафа атомарны; отказ публикации
// уведомления не откатывает отмену, а лишь помечается в ответе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: candidat=%d", req.CandidatID)

	// 1. Валидация входных данных
	if req.CandidatID <= 0 {
		return nil, fmt.Errorf("%w: candidat id must be positive", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем кандидата
	cand, err := uc.candidatRepo.GetByID(ctx, req.CandidatID)
	if err != nil {
		if errors.Is(err, candidatRepo.ErrCandidatNotFound) {
			uc.logger.Warn("CancelReservation: candidat id=%d not found", req.CandidatID)
			return nil, ErrCandidatNotFound
		}
		uc.logger.Error("CancelReservation: failed to get candidat id=%d: %v", req.CandidatID, err)
		return nil, fmt.Errorf("%w: failed to get candidat: %v", ErrInternal, err)
	}

	// 4. Ищем текущую бронь кандидата
	booked, err := uc.placeRepo.FindBookedByCandidat(ctx, req.CandidatID)
	if err != nil {
		if errors.Is(err, placeRepo.ErrPlaceNotFound) {
			uc.logger.Warn("CancelReservation: candidat id=%d has no reservation", req.CandidatID)
			return nil, ErrNoReservation
		}
		uc.logger.Error("CancelReservation: failed to get reservation for candidat id=%d: %v",
			req.CandidatID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 5. Оцениваем отмену: поздняя отмена влечет штрафной период
	outcome, err := uc.policy.EvaluateCancellation(cand, booked.Date, now)
	if err != nil {
		uc.logger.Error("CancelReservation: failed to evaluate cancellation for candidat id=%d: %v",
			req.CandidatID, err)
		return nil, fmt.Errorf("%w: failed to evaluate cancellation: %v", ErrInternal, err)
	}

	// 6. Освобождаем место и фиксируем штраф в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 6.1. Освобождаем место
		if err := uc.placeRepo.Release(txCtx, booked.ID); err != nil {
			uc.logger.Error("CancelReservation: failed to release place id=%d: %v", booked.ID, err)
			return fmt.Errorf("%w: failed to release place: %v", ErrInternal, err)
		}

		// 6.2. Применяем штраф за позднюю отмену
		if outcome.Penalized {
			updated, err := uc.candidatRepo.UpdateCanBookAfter(txCtx, cand.ID, *outcome.NewCanBookAfter)
			if err != nil {
				uc.logger.Error("CancelReservation: failed to persist penalty for candidat id=%d: %v",
					cand.ID, err)
				return fmt.Errorf("%w: failed to persist penalty: %v", ErrInternal, err)
			}
			uc.logger.Info("CancelReservation: penalty applied to candidat id=%d (updated=%t, until %s)",
				cand.ID, updated, outcome.NewCanBookAfter.Format(domain.DateFormat))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelReservation: place id=%d released, candidat id=%d", booked.ID, cand.ID)

	// 7. Публикуем уведомление. Отказ здесь - мягкий: отмена уже выполнена
	resp := &Response{
		Statusmail:   true,
		Message:      domain.CancelResaWithMailSent,
		CanBookAfter: outcome.NewCanBookAfter,
	}

	if uc.notifier == nil {
		uc.logger.Info("CancelReservation: notifier disabled, no email for candidat id=%d", cand.ID)
		resp.Statusmail = false
		resp.Message = domain.CancelResaWithNoMailSent
		return resp, nil
	}

	if err := uc.notifier.SendCancelBooking(ctx, cand); err != nil {
		uc.logger.Warn("CancelReservation: failed to publish notification for candidat id=%d: %v",
			cand.ID, err)
		resp.Statusmail = false
		resp.Message = domain.CancelResaWithNoMailSent
	}

	return resp, nil
}
