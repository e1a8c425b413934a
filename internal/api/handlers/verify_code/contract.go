package verify_code

import (
	"context"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
)

type VerificationService interface {
	VerifyCode(ctx context.Context, bookingID int64, code string, channel domain.Channel) (*verification.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
