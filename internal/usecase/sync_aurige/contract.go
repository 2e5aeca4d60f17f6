package sync_aurige

import (
	"context"
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// CandidatRepository интерфейс репозитория кандидатов
type CandidatRepository interface {
	FindByNephAndName(ctx context.Context, codeNeph, nomNaissance string) (*domain.Candidat, error)
	UpdateCanBookAfter(ctx context.Context, id int64, canBookAfter time.Time) (bool, error)
	MarkValidated(ctx context.Context, id int64, validated bool) error
}

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	FindBookedByCandidat(ctx context.Context, candidatID int64) (*domain.BookedPlace, error)
	Release(ctx context.Context, placeID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс почтовых уведомлений
type Notifier interface {
	SendCancelBooking(ctx context.Context, candidat *domain.Candidat) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
