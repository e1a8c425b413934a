package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots"
)

const (
	msgInvalidID = "некорректный ID блокировки"
	msgNotFound  = "блокировка не найдена"
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

// Handle DELETE /api/v1/admin/blocked-slots/{blockedSlotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["blockedSlotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/blocked-slots/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Unblock(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, blockedslots.ErrBlockedSlotNotFound):
			h.logger.Warn("DELETE /admin/blocked-slots/{id} - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/blocked-slots/{id} - Failed to unblock: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocked-slots/{id} - Slot unblocked: id=%d", id)
	handlers.RespondNoContent(w)
}
