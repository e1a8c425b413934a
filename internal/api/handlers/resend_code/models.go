package resend_code

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
)

// ResendCodeResponse HTTP response model
type ResendCodeResponse struct {
	BookingID int64  `json:"bookingId"`
	ExpiresAt string `json:"expiresAt"` // ISO 8601
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(issued *verification.Issued) *ResendCodeResponse {
	return &ResendCodeResponse{
		BookingID: issued.BookingID,
		ExpiresAt: issued.ExpiresAt.Format(time.RFC3339),
	}
}
