package cancel_reservation

import (
	"context"
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	FindBookedByCandidat(ctx context.Context, candidatID int64) (*domain.BookedPlace, error)
	Release(ctx context.Context, placeID int64) error
}

// CandidatRepository интерфейс репозитория кандидатов
type CandidatRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Candidat, error)
	UpdateCanBookAfter(ctx context.Context, id int64, canBookAfter time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс почтовых уведомлений
type Notifier interface {
	SendCancelBooking(ctx context.Context, candidat *domain.Candidat) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
