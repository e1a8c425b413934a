package reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountActive считает не отменённые и не удалённые бронирования на (date, time)
	CountActive(ctx context.Context, date time.Time, startTime types.TimeString) (int, error)
}

// BlockedSlotRepository интерфейс репозитория заблокированных слотов
type BlockedSlotRepository interface {
	Exists(ctx context.Context, date time.Time, startTime types.TimeString) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счётчики отказов
type Metrics interface {
	IncBookingRejected(reason string)
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
