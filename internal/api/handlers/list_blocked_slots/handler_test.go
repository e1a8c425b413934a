package list_blocked_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	from, to time.Time
	err      error
}

func (s *stubService) List(_ context.Context, from, to time.Time) (*models.BlockedSlotListResponse, error) {
	s.from, s.to = from, to
	if s.err != nil {
		return nil, s.err
	}
	return &models.BlockedSlotListResponse{BlockedSlots: []models.BlockedSlotResponse{
		{ID: 1, Date: "2026-10-21", Time: "14:00"},
	}}, nil
}

func serve(svc BlockedSlotService, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{}

	w := serve(svc, "/api/v1/admin/blocked-slots?from=2026-10-19&to=2026-10-25")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), svc.from)
	assert.Equal(t, time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC), svc.to)

	var resp models.BlockedSlotListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.BlockedSlots, 1)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/api/v1/admin/blocked-slots?from=2026-10-19").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(&stubService{err: blockedslots.ErrInvalidTimeRange}, "/api/v1/admin/blocked-slots?from=2026-10-25&to=2026-10-19").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&stubService{err: blockedslots.ErrInternal}, "/api/v1/admin/blocked-slots?from=2026-10-19&to=2026-10-25").Code)
}
