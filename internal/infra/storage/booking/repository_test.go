package booking

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

func TestIsConflictError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"deadlock", &pq.Error{Code: "40P01"}, true},
		{"wrapped pq error", fmt.Errorf("commit: %w", &pq.Error{Code: "40001"}), true},
		{"conflict sentinel", fmt.Errorf("%w: lock", ErrConflict), true},
		{"other pq error", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConflictError(tt.err))
		})
	}
}

func TestExecError(t *testing.T) {
	r := NewRepository(nil, nil)

	err := r.execError("Create", &pq.Error{Code: "40001"})
	assert.ErrorIs(t, err, ErrConflict)

	err = r.execError("Create", errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestScanError(t *testing.T) {
	r := NewRepository(nil, nil)

	err := r.scanError("GetByID", &pq.Error{Code: "40001"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.True(t, IsConflictError(err))

	err = r.scanError("GetByID", errors.New("unexpected column type"))
	assert.ErrorIs(t, err, ErrScanRow)
	assert.False(t, IsConflictError(err))
}

func TestSlotKey_IgnoresTimezone(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	local := time.Date(2025, 3, 17, 0, 0, 0, 0, prague)
	utc := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "booking-slot:2025-03-17|08:00", slotKey(local, types.MustTimeString("08:00")))
	assert.Equal(t, slotKey(local, "08:00"), slotKey(utc, "08:00"))
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, nullString("").Valid)
	assert.True(t, nullString("hash").Valid)
	assert.Equal(t, []string{"cancelled"}, statusStrings([]domain.BookingStatus{domain.StatusCancelled}))
}
