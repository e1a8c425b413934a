package list_blocked_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots/models"
)

type BlockedSlotService interface {
	List(ctx context.Context, from, to time.Time) (*models.BlockedSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
