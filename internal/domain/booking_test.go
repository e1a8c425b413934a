package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_VerificationState(t *testing.T) {
	tests := []struct {
		name    string
		booking Booking
		want    VerificationState
	}{
		{
			name:    "fresh booking",
			booking: Booking{Status: StatusPendingVerification},
			want:    Unverified{},
		},
		{
			name:    "email verified",
			booking: Booking{Status: StatusPendingVerification, Verification: Verification{EmailVerified: true}},
			want:    PartiallyVerified{Verified: ChannelEmail, Pending: ChannelPhone},
		},
		{
			name:    "phone verified",
			booking: Booking{Status: StatusPendingVerification, Verification: Verification{PhoneVerified: true}},
			want:    PartiallyVerified{Verified: ChannelPhone, Pending: ChannelEmail},
		},
		{
			name:    "confirmed",
			booking: Booking{Status: StatusConfirmed, Verification: Verification{EmailVerified: true, PhoneVerified: true}},
			want:    Confirmed{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.VerificationState())
		})
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	pending := &Booking{Status: StatusPendingVerification}
	assert.True(t, pending.CanTransitionTo(StatusCancelled))
	assert.True(t, pending.CanTransitionTo(StatusCompleted))
	assert.False(t, pending.CanTransitionTo(StatusConfirmed))

	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransitionTo(StatusCompleted))
	assert.False(t, confirmed.CanTransitionTo(StatusPendingVerification))

	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.CanTransitionTo(StatusCompleted))
}

func TestBooking_IsActive(t *testing.T) {
	now := time.Now()

	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusConfirmed, DeletedAt: &now}).IsActive())
}

func TestVerification_IsExpired(t *testing.T) {
	now := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	expiry := now.Add(10 * time.Minute)
	v := Verification{ExpiresAt: &expiry}

	assert.False(t, v.IsExpired(now))
	assert.False(t, v.IsExpired(expiry))
	assert.True(t, v.IsExpired(expiry.Add(time.Second)))
	assert.True(t, Verification{}.IsExpired(now))
}

func TestParseChannel(t *testing.T) {
	c, ok := ParseChannel("phone")
	assert.True(t, ok)
	assert.Equal(t, ChannelPhone, c)
	assert.Equal(t, ChannelEmail, c.Other())

	_, ok = ParseChannel("fax")
	assert.False(t, ok)
}
