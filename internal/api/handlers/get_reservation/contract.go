package get_reservation

import (
	"context"

	"github.com/candilib/DTE-BookingService/internal/service/reservations/models"
)

// ReservationService интерфейс сервиса бронирований кандидата
type ReservationService interface {
	GetByCandidat(ctx context.Context, candidatID int64) (*models.ReservationResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
