package verify_code

import (
	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
	"github.com/m04kA/SMC-InspectionBooking/pkg/ptr"
)

// VerifyCodeRequest HTTP request model
type VerifyCodeRequest struct {
	Code    string `json:"code"`
	Channel string `json:"channel"` // "email" | "phone"
}

// VerifyCodeResponse HTTP response model
type VerifyCodeResponse struct {
	BookingID      int64   `json:"bookingId"`
	Status         string  `json:"status"`
	Confirmed      bool    `json:"confirmed"`
	PendingChannel *string `json:"pendingChannel,omitempty"`
	Message        string  `json:"message"`
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(res *verification.Result) *VerifyCodeResponse {
	out := &VerifyCodeResponse{
		BookingID: res.BookingID,
		Status:    string(res.Status),
		Confirmed: res.Confirmed,
		Message:   res.Message,
	}
	if res.PendingChannel != nil {
		out.PendingChannel = ptr.Ptr(string(*res.PendingChannel))
	}
	return out
}
