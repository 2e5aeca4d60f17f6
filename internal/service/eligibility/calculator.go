// Package eligibility чистые бизнес-правила допуска кандидата к бронированию:
// окно бронирования, штрафной период после провала и правила отмены.
// Функции пакета не имеют побочных эффектов - сохранение вычисленных дат
// выполняет вызывающая сторона
package eligibility

import (
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// Rules бизнес-константы правил бронирования (в днях)
// Передаются явно из конфигурации, глобального состояния нет
type Rules struct {
	DelayToBook      int
	TimeoutToRetry   int
	DaysForbidCancel int
}

// Calculator вычисляет даты допуска кандидата к бронированию
type Calculator struct {
	rules Rules
}

// NewCalculator создает калькулятор с переданными правилами
func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules}
}

// BeginDateAuthorize возвращает самую раннюю дату, с которой кандидат
// может бронировать место.
//
// База: now + DelayToBook дней. Если у кандидата хранится валидная
// CanBookAfter строго позже базы - действует она. Правило монотонно:
// свежее вычисление никогда не сдвигает дату допуска раньше, продлить
// её могут только новые штрафы
func (c *Calculator) BeginDateAuthorize(candidat *domain.Candidat, now time.Time) time.Time {
	beginDateDefault := now.UTC().AddDate(0, 0, c.rules.DelayToBook)

	if candidat == nil || candidat.CanBookAfter == nil || candidat.CanBookAfter.IsZero() {
		return beginDateDefault
	}

	if candidat.CanBookAfter.After(beginDateDefault) {
		return candidat.CanBookAfter.UTC()
	}
	return beginDateDefault
}

// MinBookableDate возвращает самую раннюю дату, доступную для
// бронирования без учета персонального штрафа кандидата:
// now + DelayToBook дней. Используется как нижняя граница по умолчанию
// при просмотре свободных дат
func (c *Calculator) MinBookableDate(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, c.rules.DelayToBook)
}

// CanBookAfterFailure вычисляет окончание штрафного периода после
// проваленного экзамена: конец дня datePassage + TimeoutToRetry дней.
//
// Если у кандидата уже хранится более поздняя CanBookAfter - остаётся она:
// провал не сокращает действующий, более длинный штраф
func (c *Calculator) CanBookAfterFailure(candidat *domain.Candidat, datePassage time.Time) (time.Time, error) {
	if datePassage.IsZero() {
		return time.Time{}, ErrMissingDatePassage
	}
	if candidat == nil {
		return time.Time{}, ErrMissingCandidat
	}

	newCanBookAfter := domain.EndOfDay(datePassage).AddDate(0, 0, c.rules.TimeoutToRetry)

	if candidat.CanBookAfter != nil && !candidat.CanBookAfter.IsZero() &&
		candidat.CanBookAfter.After(newCanBookAfter) {
		return candidat.CanBookAfter.UTC(), nil
	}
	return newCanBookAfter, nil
}
