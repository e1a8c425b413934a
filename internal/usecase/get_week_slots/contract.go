package get_week_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByDateRange(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// BlockedSlotRepository интерфейс репозитория заблокированных слотов
type BlockedSlotRepository interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.BlockedSlot, error)
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
