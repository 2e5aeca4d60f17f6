package get_available_dates

import (
	"context"

	dates "github.com/candilib/DTE-BookingService/internal/usecase/get_available_dates"
)

// DatesUseCase интерфейс use case поиска доступных дат
type DatesUseCase interface {
	ByCentreID(ctx context.Context, req *dates.Request) (*dates.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
