// Package sync_aurige обработка выгрузки Aurige: сверка кандидатов с
// результатами экзаменов и назначение штрафных периодов за провалы
package sync_aurige

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
	candidatRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/candidat"
	placeRepo "github.com/candilib/DTE-BookingService/internal/infra/storage/place"
	"github.com/candilib/DTE-BookingService/internal/service/eligibility"
)

// UseCase use case синхронизации кандидатов с выгрузкой Aurige
type UseCase struct {
	candidatRepo CandidatRepository
	placeRepo    PlaceRepository
	calc         *eligibility.Calculator
	txManager    TransactionManager
	notifier     Notifier
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// notifier может быть nil, если уведомления отключены конфигурацией
func NewUseCase(
	candidatRepo CandidatRepository,
	placeRepo PlaceRepository,
	rules eligibility.Rules,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		candidatRepo: candidatRepo,
		placeRepo:    placeRepo,
		calc:         eligibility.NewCalculator(rules),
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

// Execute обрабатывает записи выгрузки по одной: ошибка отдельной записи
// не прерывает обработку остальных
func (uc *UseCase) Execute(ctx context.Context, records []CandidatAurige) (*Report, error) {
	if len(records) == 0 {
		return nil, ErrEmptyBatch
	}

	uc.logger.Info("SyncAurige: processing %d records", len(records))

	report := &Report{
		Total:   len(records),
		Records: make([]RecordResult, 0, len(records)),
	}

	for i := range records {
		result := uc.processRecord(ctx, &records[i])
		report.Records = append(report.Records, result)

		switch result.Status {
		case StatusRejected:
			report.Rejected++
		case StatusNotFound:
			report.NotFound++
		case StatusPassed:
			report.Passed++
		case StatusPenalized:
			report.Penalized++
		case StatusValidated:
			report.Validated++
		case StatusError:
			report.Errors++
		}
	}

	uc.logger.Info("SyncAurige: done, total=%d, rejected=%d, not_found=%d, passed=%d, penalized=%d, validated=%d, errors=%d",
		report.Total, report.Rejected, report.NotFound, report.Passed,
		report.Penalized, report.Validated, report.Errors)

	return report, nil
}

func (uc *UseCase) processRecord(ctx context.Context, rec *CandidatAurige) RecordResult {
	result := RecordResult{CodeNeph: rec.CodeNeph, NomNaissance: rec.NomNaissance}

	// 1. Кандидат не подтвержден Aurige: NEPH неизвестен или фамилия не совпала
	if rec.CandidatExistant == domain.AurigeNOK || rec.CandidatExistant == domain.AurigeNOKNom {
		uc.logger.Warn("SyncAurige: candidat neph=%s rejected by Aurige (%s)",
			rec.CodeNeph, rec.CandidatExistant)
		result.Status = StatusRejected
		result.Details = rec.CandidatExistant
		return result
	}

	// 2. Ищем кандидата в базе по NEPH и фамилии
	cand, err := uc.candidatRepo.FindByNephAndName(ctx, rec.CodeNeph, rec.NomNaissance)
	if err != nil {
		if errors.Is(err, candidatRepo.ErrCandidatNotFound) {
			uc.logger.Warn("SyncAurige: candidat neph=%s nom=%s not found", rec.CodeNeph, rec.NomNaissance)
			result.Status = StatusNotFound
			return result
		}
		uc.logger.Error("SyncAurige: failed to find candidat neph=%s: %v", rec.CodeNeph, err)
		result.Status = StatusError
		result.Details = err.Error()
		return result
	}

	// 3. Практический экзамен сдан: кандидату больше нечего бронировать
	if rec.ReussitePratique == domain.AurigeOK {
		if err := uc.releaseReservation(ctx, cand, false); err != nil {
			result.Status = StatusError
			result.Details = err.Error()
			return result
		}
		uc.logger.Info("SyncAurige: candidat id=%d passed the practical exam", cand.ID)
		result.Status = StatusPassed
		return result
	}

	// 4. Последний провал (неуспех или неявка) влечет штрафной период
	if rec.DateDernierNonReussite != "" {
		penalized, err := uc.applyFailurePenalty(ctx, cand, rec)
		if err != nil {
			result.Status = StatusError
			result.Details = err.Error()
			return result
		}
		if penalized {
			result.Status = StatusPenalized
			result.Details = rec.ObjetDernierNonReussite
			return result
		}
	}

	// 5. Запись корректна, штраф не требуется: подтверждаем кандидата
	if !cand.IsValidated {
		if err := uc.candidatRepo.MarkValidated(ctx, cand.ID, true); err != nil {
			uc.logger.Error("SyncAurige: failed to validate candidat id=%d: %v", cand.ID, err)
			result.Status = StatusError
			result.Details = err.Error()
			return result
		}
		uc.logger.Info("SyncAurige: candidat id=%d validated", cand.ID)
	}
	result.Status = StatusValidated
	return result
}

// applyFailurePenalty вычисляет и сохраняет штрафной период за провал.
// Бронь, попадающая внутрь нового штрафа, освобождается
func (uc *UseCase) applyFailurePenalty(ctx context.Context, cand *domain.Candidat, rec *CandidatAurige) (bool, error) {
	datePassage, err := parseAurigeDate(rec.DateDernierNonReussite)
	if err != nil {
		uc.logger.Warn("SyncAurige: candidat id=%d has invalid failure date %q: %v",
			cand.ID, rec.DateDernierNonReussite, err)
		return false, err
	}

	canBookAfter, err := uc.calc.CanBookAfterFailure(cand, datePassage)
	if err != nil {
		return false, fmt.Errorf("failed to compute penalty: %w", err)
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Условное обновление сохраняет монотонность: более ранний штраф
		// не перезаписывает действующий более поздний
		updated, err := uc.candidatRepo.UpdateCanBookAfter(txCtx, cand.ID, canBookAfter)
		if err != nil {
			return fmt.Errorf("failed to persist penalty: %w", err)
		}
		uc.logger.Info("SyncAurige: penalty for candidat id=%d (updated=%t, until %s)",
			cand.ID, updated, canBookAfter.Format(domain.DateFormat))

		// Бронь на дату внутри штрафного периода больше не действительна
		booked, err := uc.placeRepo.FindBookedByCandidat(txCtx, cand.ID)
		if err != nil {
			if errors.Is(err, placeRepo.ErrPlaceNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get reservation: %w", err)
		}
		if booked.Date.After(canBookAfter) {
			return nil
		}
		if err := uc.placeRepo.Release(txCtx, booked.ID); err != nil {
			return fmt.Errorf("failed to release place: %w", err)
		}
		uc.logger.Info("SyncAurige: place id=%d released, date inside penalty of candidat id=%d",
			booked.ID, cand.ID)
		cand.CanBookAfter = &canBookAfter
		return uc.notifyCancellation(txCtx, cand)
	})
	if err != nil {
		uc.logger.Error("SyncAurige: failed to apply penalty to candidat id=%d: %v", cand.ID, err)
		return false, err
	}
	return true, nil
}

// releaseReservation освобождает текущую бронь кандидата, если она есть
func (uc *UseCase) releaseReservation(ctx context.Context, cand *domain.Candidat, notify bool) error {
	booked, err := uc.placeRepo.FindBookedByCandidat(ctx, cand.ID)
	if err != nil {
		if errors.Is(err, placeRepo.ErrPlaceNotFound) {
			return nil
		}
		uc.logger.Error("SyncAurige: failed to get reservation for candidat id=%d: %v", cand.ID, err)
		return err
	}

	if err := uc.placeRepo.Release(ctx, booked.ID); err != nil {
		uc.logger.Error("SyncAurige: failed to release place id=%d: %v", booked.ID, err)
		return err
	}
	uc.logger.Info("SyncAurige: place id=%d released for candidat id=%d", booked.ID, cand.ID)

	if notify {
		return uc.notifyCancellation(ctx, cand)
	}
	return nil
}

// notifyCancellation публикует уведомление об отмене. Отказ публикации
// мягкий: бронь уже снята, ошибка только логируется
func (uc *UseCase) notifyCancellation(ctx context.Context, cand *domain.Candidat) error {
	if uc.notifier == nil {
		return nil
	}
	if err := uc.notifier.SendCancelBooking(ctx, cand); err != nil {
		uc.logger.Warn("SyncAurige: failed to publish notification for candidat id=%d: %v", cand.ID, err)
	}
	return nil
}

// parseAurigeDate разбирает дату выгрузки: сначала календарный формат,
// затем полный RFC 3339
func parseAurigeDate(raw string) (time.Time, error) {
	if t, err := time.Parse(domain.DateFormat, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", raw)
	}
	return t.UTC(), nil
}
