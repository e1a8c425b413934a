package block_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные блокировки"
	msgTimeNotOffered     = "время не входит в расписание выбранного дня"
	msgAlreadyBlocked     = "слот уже заблокирован"
)

type Handler struct {
	service BlockedSlotService
	logger  Logger
}

func NewHandler(service BlockedSlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blocked-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/blocked-slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.Block(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blockedslots.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, blockedslots.ErrTimeNotOffered):
			h.logger.Warn("POST /admin/blocked-slots - Time not offered: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTimeNotOffered)

		case errors.Is(err, blockedslots.ErrAlreadyBlocked):
			h.logger.Warn("POST /admin/blocked-slots - Already blocked: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgAlreadyBlocked)

		default:
			h.logger.Error("POST /admin/blocked-slots - Failed to block slot: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-slots - Slot blocked: id=%d, date=%s, time=%s", result.ID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
