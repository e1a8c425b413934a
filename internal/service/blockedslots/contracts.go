package blockedslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
	Delete(ctx context.Context, id int64) error
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.BlockedSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
