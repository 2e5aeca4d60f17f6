package domain

import "time"

// Вся арифметика дат в ядре выполняется в UTC.
// Локализация и форматирование - забота презентационного слоя.

// StartOfDay возвращает начало календарного дня в UTC
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay возвращает последний момент календарного дня в UTC
// (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// TruncateToDay обнуляет компонент времени, оставляя только дату
func TruncateToDay(t time.Time) time.Time {
	return StartOfDay(t)
}

// SameDay проверяет, что два момента относятся к одному календарному дню UTC
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
