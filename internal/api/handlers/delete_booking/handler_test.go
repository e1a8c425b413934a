package delete_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-InspectionBooking/internal/service/bookings"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	deleted []int64
	err     error
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/admin/bookings/{bookingId}", NewHandler(svc, nopLogger{}).Handle).
		Methods(http.MethodDelete)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, target, nil))
	return w
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	assert.Equal(t, http.StatusNoContent, serve(svc, "/api/v1/admin/bookings/5").Code)
	assert.Equal(t, []int64{5}, svc.deleted)

	assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/admin/bookings/five").Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: bookings.ErrBookingNotFound}, "/api/v1/admin/bookings/5").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubService{err: bookings.ErrInternal}, "/api/v1/admin/bookings/5").Code)
}
