package verify_code

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/verification"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	gotCode    string
	gotChannel domain.Channel
	result     *verification.Result
	err        error
}

func (s *stubService) VerifyCode(_ context.Context, id int64, code string, channel domain.Channel) (*verification.Result, error) {
	s.gotCode = code
	s.gotChannel = channel
	if s.err != nil {
		return nil, s.err
	}
	s.result.BookingID = id
	return s.result, nil
}

func serve(svc VerificationService, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/verify", NewHandler(svc, nopLogger{}).Handle).
		Methods(http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return w
}

func TestHandle_PartialVerification(t *testing.T) {
	pending := domain.ChannelPhone
	svc := &stubService{result: &verification.Result{
		Status:         domain.StatusPendingVerification,
		PendingChannel: &pending,
		Message:        "email verified, phone verification pending",
	}}

	w := serve(svc, "/api/v1/bookings/42/verify", `{"code":" 384920 ","channel":"Email"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "384920", svc.gotCode)
	assert.Equal(t, domain.ChannelEmail, svc.gotChannel)

	var resp VerifyCodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.BookingID)
	assert.False(t, resp.Confirmed)
	require.NotNil(t, resp.PendingChannel)
	assert.Equal(t, "phone", *resp.PendingChannel)
}

func TestHandle_Confirmed(t *testing.T) {
	svc := &stubService{result: &verification.Result{
		Status:    domain.StatusConfirmed,
		Confirmed: true,
		Message:   "booking confirmed",
	}}

	w := serve(svc, "/api/v1/bookings/42/verify", `{"code":"384920","channel":"phone"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp VerifyCodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Confirmed)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Nil(t, resp.PendingChannel)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid channel", verification.ErrInvalidChannel, http.StatusBadRequest},
		{"not found", verification.ErrBookingNotFound, http.StatusNotFound},
		{"invalid code", verification.ErrInvalidCode, http.StatusBadRequest},
		{"expired", verification.ErrCodeExpired, http.StatusGone},
		{"already confirmed", verification.ErrAlreadyConfirmed, http.StatusConflict},
		{"not pending", verification.ErrBookingNotPending, http.StatusConflict},
		{"internal", verification.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&stubService{err: tt.err}, "/api/v1/bookings/1/verify", `{"code":"111111","channel":"email"}`)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/api/v1/bookings/x/verify", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/api/v1/bookings/1/verify", `not json`).Code)
}
