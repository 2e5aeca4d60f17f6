package book_place

import (
	"context"

	booking "github.com/candilib/DTE-BookingService/internal/usecase/book_place"
)

// BookingUseCase интерфейс use case бронирования места
type BookingUseCase interface {
	Execute(ctx context.Context, req *booking.Request) (*booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
