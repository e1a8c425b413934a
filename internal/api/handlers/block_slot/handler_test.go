package block_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/blockedslots/models"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	got *models.BlockSlotRequest
	err error
}

func (s *stubService) Block(_ context.Context, req *models.BlockSlotRequest) (*models.BlockedSlotResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BlockedSlotResponse{
		ID:     3,
		Date:   req.Date.Format(domain.DateFormat),
		Time:   req.Time.String(),
		Reason: req.Reason,
	}, nil
}

func serve(svc BlockedSlotService, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/blocked-slots", strings.NewReader(body)))
	return w
}

func TestHandle_Created(t *testing.T) {
	svc := &stubService{}

	w := serve(svc, `{"date":"2026-10-21","time":"14:00","reason":"lift maintenance"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, types.MustTimeString("14:00"), svc.got.Time)

	var resp models.BlockedSlotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "2026-10-21", resp.Date)
	assert.Equal(t, "lift maintenance", resp.Reason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad body", `[]`, nil, http.StatusBadRequest},
		{"bad date", `{"date":"21/10/2026","time":"14:00"}`, nil, http.StatusBadRequest},
		{"bad time", `{"date":"2026-10-21","time":"2pm"}`, nil, http.StatusBadRequest},
		{"not offered", `{"date":"2026-10-25","time":"14:00"}`, blockedslots.ErrTimeNotOffered, http.StatusBadRequest},
		{"invalid input", `{"date":"2026-10-21","time":"14:00"}`, blockedslots.ErrInvalidInput, http.StatusBadRequest},
		{"duplicate", `{"date":"2026-10-21","time":"14:00"}`, blockedslots.ErrAlreadyBlocked, http.StatusConflict},
		{"internal", `{"date":"2026-10-21","time":"14:00"}`, blockedslots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(&stubService{err: tt.err}, tt.body).Code)
		})
	}
}
