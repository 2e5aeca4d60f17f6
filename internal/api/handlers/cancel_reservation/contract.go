package cancel_reservation

import (
	"context"

	cancel "github.com/candilib/DTE-BookingService/internal/usecase/cancel_reservation"
)

// CancelUseCase интерфейс use case отмены бронирования
type CancelUseCase interface {
	Execute(ctx context.Context, req *cancel.Request) (*cancel.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
