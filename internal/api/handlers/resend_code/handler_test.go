package resend_code

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	expiresAt time.Time
	err       error
}

func (s *stubService) Resend(_ context.Context, id int64) (*verification.Issued, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &verification.Issued{BookingID: id, ExpiresAt: s.expiresAt}, nil
}

func serve(svc VerificationService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/resend", NewHandler(svc, nopLogger{}).Handle).
		Methods(http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{expiresAt: time.Date(2026, 10, 18, 12, 10, 0, 0, time.UTC)}

	w := serve(svc, "/api/v1/bookings/42/resend")

	require.Equal(t, http.StatusOK, w.Code)
	var resp ResendCodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ResendCodeResponse{BookingID: 42, ExpiresAt: "2026-10-18T12:10:00Z"}, resp)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", verification.ErrBookingNotFound, http.StatusNotFound},
		{"already confirmed", verification.ErrAlreadyConfirmed, http.StatusConflict},
		{"not pending", verification.ErrBookingNotPending, http.StatusConflict},
		{"too soon", verification.ErrResendTooSoon, http.StatusTooManyRequests},
		{"internal", verification.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(&stubService{err: tt.err}, "/api/v1/bookings/1/resend").Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/api/v1/bookings/abc/resend").Code)
}
