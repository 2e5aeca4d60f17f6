package eligibility

import (
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// CancellationOutcome результат оценки отмены бронирования
type CancellationOutcome struct {
	// Penalized отмена поздняя, кандидату назначается штрафной период
	Penalized bool

	// NewCanBookAfter окончание штрафного периода, задано только при Penalized.
	// Сохранение значения - единственная обязанность вызывающей стороны
	NewCanBookAfter *time.Time
}

// Policy правила отмены бронирования
type Policy struct {
	rules Rules
	calc  *Calculator
}

// NewPolicy создает политику отмены с переданными правилами
func NewPolicy(rules Rules) *Policy {
	return &Policy{
		rules: rules,
		calc:  NewCalculator(rules),
	}
}

// CanCancelWithoutPenalty проверяет, что отмена попадает в безштрафное окно:
// дата экзамена строго позже now + DaysForbidCancel дней.
// Граница исключается: при разнице ровно 0 штраф применяется
func (p *Policy) CanCancelWithoutPenalty(bookedDate, now time.Time) bool {
	cutoff := now.UTC().AddDate(0, 0, p.rules.DaysForbidCancel)
	return bookedDate.After(cutoff)
}

// EvaluateCancellation оценивает отмену бронирования на дату bookedDate.
// Для поздней отмены вычисляет новый штрафной период по монотонному правилу
// калькулятора, отталкиваясь от даты брони
func (p *Policy) EvaluateCancellation(candidat *domain.Candidat, bookedDate, now time.Time) (CancellationOutcome, error) {
	if candidat == nil {
		return CancellationOutcome{}, ErrMissingCandidat
	}
	if bookedDate.IsZero() {
		return CancellationOutcome{}, ErrMissingDatePassage
	}

	if p.CanCancelWithoutPenalty(bookedDate, now) {
		return CancellationOutcome{Penalized: false}, nil
	}

	newCanBookAfter, err := p.calc.CanBookAfterFailure(candidat, bookedDate)
	if err != nil {
		return CancellationOutcome{}, err
	}

	return CancellationOutcome{
		Penalized:       true,
		NewCanBookAfter: &newCanBookAfter,
	}, nil
}

// LastDateToCancel возвращает последний календарный день, в который
// отмена брони на bookedDate ещё не наказывается (без компонента времени)
func (p *Policy) LastDateToCancel(bookedDate time.Time) time.Time {
	return domain.TruncateToDay(bookedDate.AddDate(0, 0, -p.rules.DaysForbidCancel))
}

// IsSameReservation проверяет, что запрошенные центр и дата указывают на
// уже существующую бронь кандидата. Центры должны совпадать точно, а
// разница дат составлять ровно ноль секунд: расхождение даже в одну
// секунду - другой слот
func IsSameReservation(centreID int64, requestedDate time.Time, place *domain.Place) bool {
	if place == nil || place.CentreID != centreID {
		return false
	}
	return requestedDate.Sub(place.Date) == 0
}
