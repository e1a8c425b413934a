package resend_code

import (
	"context"

	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
)

type VerificationService interface {
	Resend(ctx context.Context, bookingID int64) (*verification.Issued, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
