package verification

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
)

// Email templates
const (
	TemplateVerificationCode = "booking_verification_code"
	TemplateBookingConfirmed = "booking_confirmed"
)

// Issued результат выдачи кода
type Issued struct {
	BookingID int64
	ExpiresAt time.Time
}

// Result результат проверки кода
type Result struct {
	BookingID      int64
	Status         domain.BookingStatus
	Confirmed      bool
	PendingChannel *domain.Channel // nil, если бронирование подтверждено
	Message        string
}
