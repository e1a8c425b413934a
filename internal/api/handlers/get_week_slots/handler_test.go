package get_week_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	getWeekSlots "github.com/m04kA/SMC-InspectionBooking/internal/usecase/get_week_slots"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	got  *getWeekSlots.Request
	resp *getWeekSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getWeekSlots.Request) (*getWeekSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func weekResponse() *getWeekSlots.Response {
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	days := make([]domain.DaySlots, 0, 7)
	for i := 0; i < 7; i++ {
		day := domain.DaySlots{
			Date:    monday.AddDate(0, 0, i),
			DayName: monday.AddDate(0, 0, i).Weekday().String(),
			Slots:   []domain.TimeSlot{},
		}
		if i == 0 {
			day.Slots = []domain.TimeSlot{
				{Time: types.MustTimeString("09:00"), Available: true},
				{Time: types.MustTimeString("09:30"), Available: false, Reserved: true},
			}
		}
		days = append(days, day)
	}
	return &getWeekSlots.Response{WeekStart: monday, WeekEnd: monday.AddDate(0, 0, 6), Days: days}
}

func serve(uc GetWeekSlotsUseCase, target string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{resp: weekResponse()}

	w := serve(uc, "/api/v1/slots/week?date=2026-10-22&weekOffset=1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC), uc.got.Date)
	assert.Equal(t, 1, uc.got.WeekOffset)

	var resp WeekSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-10-19", resp.WeekStart)
	assert.Equal(t, "2026-10-25", resp.WeekEnd)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, []TimeSlotResponse{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false, Reserved: true},
	}, resp.Days[0].Slots)
	assert.NotNil(t, resp.Days[6].Slots)
	assert.Empty(t, resp.Days[6].Slots)
}

func TestHandle_DefaultsToCurrentWeek(t *testing.T) {
	uc := &stubUseCase{resp: weekResponse()}

	w := serve(uc, "/api/v1/slots/week")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, uc.got.Date.IsZero())
	assert.Zero(t, uc.got.WeekOffset)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad date", "/api/v1/slots/week?date=tomorrow", nil, http.StatusBadRequest},
		{"bad offset", "/api/v1/slots/week?weekOffset=x", nil, http.StatusBadRequest},
		{"offset out of range", "/api/v1/slots/week?weekOffset=99", getWeekSlots.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/api/v1/slots/week", getWeekSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&stubUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
