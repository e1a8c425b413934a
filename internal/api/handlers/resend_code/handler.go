package resend_code

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgAlreadyConfirmed = "бронирование уже подтверждено"
	msgNotPending       = "бронирование не ожидает подтверждения"
	msgTooSoon          = "код уже отправлен, повторите попытку позже"
)

type Handler struct {
	service VerificationService
	logger  Logger
}

func NewHandler(service VerificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/resend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/resend - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	issued, err := h.service.Resend(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/resend - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, verification.ErrAlreadyConfirmed):
			h.logger.Warn("POST /bookings/{id}/resend - Already confirmed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyConfirmed)

		case errors.Is(err, verification.ErrBookingNotPending):
			h.logger.Warn("POST /bookings/{id}/resend - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, verification.ErrResendTooSoon):
			h.logger.Warn("POST /bookings/{id}/resend - Too soon: booking_id=%d", bookingID)
			handlers.RespondTooManyRequests(w, msgTooSoon)

		default:
			h.logger.Error("POST /bookings/{id}/resend - Failed to resend code: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/resend - Code reissued: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(issued))
}
