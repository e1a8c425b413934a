package list_blocked_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots"
)

const (
	msgInvalidParams    = "некорректные параметры запроса, ожидаются from и to в формате YYYY-MM-DD"
	msgInvalidTimeRange = "некорректный период выборки"
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

// Handle GET /api/v1/admin/blocked-slots
// Query params: from, to (обязательно, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, errFrom := time.Parse(domain.DateFormat, query.Get("from"))
	to, errTo := time.Parse(domain.DateFormat, query.Get("to"))
	if err := errors.Join(errFrom, errTo); err != nil {
		h.logger.Warn("GET /admin/blocked-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, blockedslots.ErrInvalidTimeRange):
			h.logger.Warn("GET /admin/blocked-slots - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		default:
			h.logger.Error("GET /admin/blocked-slots - Failed to list blocked slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/blocked-slots - Blocked slots retrieved: count=%d", len(result.BlockedSlots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
