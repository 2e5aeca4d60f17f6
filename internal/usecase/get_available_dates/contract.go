package get_available_dates

import (
	"context"
	"time"

	"github.com/candilib/DTE-BookingService/internal/domain"
)

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	FindAvailableByCentre(ctx context.Context, centreID int64, begin time.Time, end *time.Time) ([]*domain.Place, error)
	FindByCentreAndDate(ctx context.Context, centreID int64, day time.Time) ([]*domain.Place, error)
}

// CentreRepository интерфейс репозитория центров
type CentreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Centre, error)
	FindAllByName(ctx context.Context, nom string) ([]*domain.Centre, error)
	FindByNameAndDepartement(ctx context.Context, nom, departement string) (*domain.Centre, error)
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
