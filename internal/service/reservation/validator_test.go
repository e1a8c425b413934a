package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingMetrics struct{ reasons []string }

func (m *recordingMetrics) IncBookingRejected(reason string) { m.reasons = append(m.reasons, reason) }

func slotKey(date time.Time, t types.TimeString) string {
	return date.Format(domain.DateFormat) + " " + t.String()
}

type memoryBookings struct {
	bookings []*domain.Booking
	err      error
}

func (m *memoryBookings) CountActive(_ context.Context, date time.Time, t types.TimeString) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, b := range m.bookings {
		if b.IsActive() && slotKey(b.BookingDate, b.StartTime) == slotKey(date, t) {
			count++
		}
	}
	return count, nil
}

type memoryBlocked struct {
	keys map[string]bool
	err  error
}

func (m *memoryBlocked) Exists(_ context.Context, date time.Time, t types.TimeString) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.keys[slotKey(date, t)], nil
}

// now - воскресенье 18.10.2026 12:00, ближайший вторник - 20.10.2026
var (
	now       = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	tuesday   = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	pastTue   = time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	nextSun   = time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)
	todayDate = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
)

func newValidator(bookings *memoryBookings, blocked *memoryBlocked, metrics *recordingMetrics) *Validator {
	rules := domain.NewCalendarRules(1, time.UTC)
	return NewValidator(bookings, blocked, rules, metrics, nopLogger{}).WithTimeProvider(fixedTime{now: now})
}

func TestValidate_ConcreteScenario(t *testing.T) {
	bookings := &memoryBookings{}
	metrics := &recordingMetrics{}
	v := newValidator(bookings, &memoryBlocked{}, metrics)
	ctx := context.Background()

	// Первое бронирование вторника 10:00 допустимо
	require.NoError(t, v.Validate(ctx, tuesday, "10:00"))
	bookings.bookings = append(bookings.bookings, &domain.Booking{
		BookingDate: tuesday, StartTime: "10:00", Status: domain.StatusPendingVerification,
	})

	// Второе - слот занят
	err := v.Validate(ctx, tuesday, "10:00")
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Equal(t, "slot full", RejectionReason(err))

	// Обеденный перерыв
	err = v.Validate(ctx, tuesday, "12:00")
	assert.ErrorIs(t, err, ErrTimeNotOffered)
	assert.Equal(t, "time not offered", err.Error())

	// Прошедший вторник
	err = v.Validate(ctx, pastTue, "10:00")
	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.Equal(t, "cannot book in the past", err.Error())

	assert.Equal(t, []string{"slot full", "time not offered", "cannot book in the past"}, metrics.reasons)
}

func TestValidate_CancelledBookingFreesSlot(t *testing.T) {
	active := &domain.Booking{BookingDate: tuesday, StartTime: "09:00", Status: domain.StatusConfirmed}
	bookings := &memoryBookings{bookings: []*domain.Booking{active}}
	v := newValidator(bookings, &memoryBlocked{}, &recordingMetrics{})

	assert.ErrorIs(t, v.Validate(context.Background(), tuesday, "09:00"), ErrSlotFull)

	active.Status = domain.StatusCancelled
	assert.NoError(t, v.Validate(context.Background(), tuesday, "09:00"))
}

func TestValidate_BlockAndUnblock(t *testing.T) {
	blocked := &memoryBlocked{keys: map[string]bool{slotKey(tuesday, "14:00"): true}}
	v := newValidator(&memoryBookings{}, blocked, &recordingMetrics{})

	err := v.Validate(context.Background(), tuesday, "14:00")
	assert.ErrorIs(t, err, ErrSlotBlocked)
	assert.Equal(t, "slot currently unavailable", err.Error())

	delete(blocked.keys, slotKey(tuesday, "14:00"))
	assert.NoError(t, v.Validate(context.Background(), tuesday, "14:00"))
}

func TestValidate_CheckOrder(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		time types.TimeString
		want error
	}{
		{name: "sunday is closed", date: nextSun, time: "10:00", want: ErrClosedDay},
		{name: "past wins over closed day", date: todayDate, time: "10:00", want: ErrSlotInPast},
		{name: "saturday afternoon not offered", date: saturday, time: "14:00", want: ErrTimeNotOffered},
		{name: "off-grid minute", date: tuesday, time: "10:15", want: ErrTimeNotOffered},
		{name: "saturday morning ok", date: saturday, time: "11:30", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newValidator(&memoryBookings{}, &memoryBlocked{}, &recordingMetrics{})
			err := v.Validate(context.Background(), tt.date, tt.time)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsRejection(err))
		})
	}
}

func TestValidate_BlockedCheckedBeforeCapacity(t *testing.T) {
	bookings := &memoryBookings{bookings: []*domain.Booking{
		{BookingDate: tuesday, StartTime: "16:00", Status: domain.StatusConfirmed},
	}}
	blocked := &memoryBlocked{keys: map[string]bool{slotKey(tuesday, "16:00"): true}}
	v := newValidator(bookings, blocked, &recordingMetrics{})

	assert.ErrorIs(t, v.Validate(context.Background(), tuesday, "16:00"), ErrSlotBlocked)
}

func TestValidate_StoreErrors(t *testing.T) {
	v := newValidator(&memoryBookings{}, &memoryBlocked{err: errors.New("timeout")}, &recordingMetrics{})
	err := v.Validate(context.Background(), tuesday, "10:00")
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, IsRejection(err))

	v = newValidator(&memoryBookings{err: errors.New("timeout")}, &memoryBlocked{}, &recordingMetrics{})
	assert.ErrorIs(t, v.Validate(context.Background(), tuesday, "10:00"), ErrInternal)
}
