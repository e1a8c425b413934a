package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/reservation"
	createBooking "github.com/m04kA/SMC-InspectionBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput          = "некорректные данные клиента или автомобиля"
	msgSlotNoLongerAvailable = "слот только что заняли, выберите другое время"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /bookings - Slot no longer available: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNoLongerAvailable)

		case reservation.IsRejection(err):
			reason := reservation.RejectionReason(err)
			h.logger.Warn("POST /bookings - Rejected: date=%s, time=%s, reason=%s", req.BookingDate, req.StartTime, reason)
			handlers.RespondBadRequest(w, reason)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.BookingDate, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
