package reservations

import (
	"context"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	FindBookedByCandidat(ctx context.Context, candidatID int64) (*domain.BookedPlace, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
