package book_place

import (
	"context"
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	FindBookedByCandidat(ctx context.Context, candidatID int64) (*domain.BookedPlace, error)
	ConditionalAssign(ctx context.Context, centreID int64, date time.Time, candidatID int64) (*domain.Place, error)
	Release(ctx context.Context, placeID int64) error
}

// CandidatRepository интерфейс репозитория кандидатов
type CandidatRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Candidat, error)
	UpdateCanBookAfter(ctx context.Context, id int64, canBookAfter time.Time) (bool, error)
}

// CentreRepository интерфейс репозитория центров
type CentreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Centre, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
