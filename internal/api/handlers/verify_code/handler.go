package verify_code

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidChannel     = "некорректный канал, допустимы email и phone"
	msgInvalidCode        = "неверный код подтверждения"
	msgCodeExpired        = "срок действия кода истёк, запросите новый"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyConfirmed   = "бронирование уже подтверждено"
	msgNotPending         = "бронирование не ожидает подтверждения"
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

// Handle POST /api/v1/bookings/{bookingId}/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/verify - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req VerifyCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	channel := domain.Channel(strings.ToLower(strings.TrimSpace(req.Channel)))
	result, err := h.service.VerifyCode(r.Context(), bookingID, strings.TrimSpace(req.Code), channel)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidChannel):
			h.logger.Warn("POST /bookings/{id}/verify - Invalid channel: booking_id=%d, channel=%q", bookingID, req.Channel)
			handlers.RespondBadRequest(w, msgInvalidChannel)

		case errors.Is(err, verification.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/verify - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, verification.ErrInvalidCode):
			h.logger.Warn("POST /bookings/{id}/verify - Invalid code: booking_id=%d, channel=%s", bookingID, channel)
			handlers.RespondBadRequest(w, msgInvalidCode)

		case errors.Is(err, verification.ErrCodeExpired):
			h.logger.Warn("POST /bookings/{id}/verify - Code expired: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusGone, msgCodeExpired)

		case errors.Is(err, verification.ErrAlreadyConfirmed):
			h.logger.Warn("POST /bookings/{id}/verify - Already confirmed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyConfirmed)

		case errors.Is(err, verification.ErrBookingNotPending):
			h.logger.Warn("POST /bookings/{id}/verify - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("POST /bookings/{id}/verify - Failed to verify code: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/verify - Code accepted: booking_id=%d, channel=%s, confirmed=%t",
		bookingID, channel, result.Confirmed)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
