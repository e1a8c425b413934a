package get_week_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
	getWeekSlots "github.com/m04kA/SMC-InspectionBooking/internal/usecase/get_week_slots"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidOffset = "некорректный сдвиг недели"
)

var (
	errInvalidDate   = errors.New("invalid date")
	errInvalidOffset = errors.New("invalid week offset")
)

type Handler struct {
	useCase GetWeekSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/week
// Query params: date (optional, YYYY-MM-DD), weekOffset (optional, int)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(query.Get("date"), query.Get("weekOffset"))
	if err != nil {
		h.logger.Warn("GET /slots/week - Invalid query: %v", err)
		if errors.Is(err, errInvalidOffset) {
			handlers.RespondBadRequest(w, msgInvalidOffset)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getWeekSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots/week - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOffset)

		default:
			h.logger.Error("GET /slots/week - Failed to build week: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/week - Week retrieved successfully: week_start=%s",
		result.WeekStart.Format("2006-01-02"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
