package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionBooking/internal/service/reservation"
	createBooking "github.com/m04kA/SMC-InspectionBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"phone": "+447700900123",
	"registration": "AB12 CDE",
	"vehicleType": "car",
	"bookingDate": "2026-10-20",
	"startTime": "10:00"
}`

func serve(uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestHandle_Created(t *testing.T) {
	expiresAt := time.Date(2026, 10, 18, 12, 15, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:                    42,
		BookingDate:           time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:             types.MustTimeString("10:00"),
		DurationMinutes:       30,
		Status:                "pending_verification",
		Price:                 54.85,
		VehicleRegistration:   "AB12CDE",
		VehicleType:           "car",
		VerificationExpiresAt: &expiresAt,
		CreatedAt:             time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}}

	w := serve(uc, validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "AB12 CDE", uc.got.Registration)
	assert.Equal(t, types.MustTimeString("10:00"), uc.got.StartTime)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2026-10-20", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	require.NotNil(t, resp.VerificationExpiresAt)
	assert.Equal(t, "2026-10-18T12:15:00Z", *resp.VerificationExpiresAt)
}

func TestHandle_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"name":`, msgInvalidRequestBody},
		{"bad date", strings.Replace(validBody, "2026-10-20", "20.10.2026", 1), msgInvalidDate},
		{"bad time", strings.Replace(validBody, `"10:00"`, `"25:00"`, 1), msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			w := serve(uc, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"closed day", reservation.ErrClosedDay, http.StatusBadRequest, "closed on Sunday"},
		{"past slot", reservation.ErrSlotInPast, http.StatusBadRequest, "cannot book in the past"},
		{"full slot", reservation.ErrSlotFull, http.StatusBadRequest, "slot full"},
		{"blocked slot", reservation.ErrSlotBlocked, http.StatusBadRequest, "slot currently unavailable"},
		{
			"lost race",
			fmt.Errorf("%w: %w", createBooking.ErrSlotNoLongerAvailable, reservation.ErrSlotFull),
			http.StatusConflict, msgSlotNoLongerAvailable,
		},
		{"invalid input", fmt.Errorf("%w: bad email", createBooking.ErrInvalidInput), http.StatusBadRequest, msgInvalidInput},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&stubUseCase{err: tt.err}, validBody)

			assert.Equal(t, tt.status, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}
