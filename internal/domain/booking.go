package domain

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingVerification BookingStatus = "pending_verification"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCancelled           BookingStatus = "cancelled"
	StatusCompleted           BookingStatus = "completed"
)

// ParseBookingStatus validates a raw status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch status := BookingStatus(s); status {
	case StatusPendingVerification, StatusConfirmed, StatusCancelled, StatusCompleted:
		return status, true
	default:
		return "", false
	}
}

// IsTerminal returns true for statuses that admit no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Channel is a verification channel
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
)

// ParseChannel validates a raw channel string
func ParseChannel(s string) (Channel, bool) {
	switch c := Channel(s); c {
	case ChannelEmail, ChannelPhone:
		return c, true
	default:
		return "", false
	}
}

// Other returns the opposite channel
func (c Channel) Other() Channel {
	if c == ChannelEmail {
		return ChannelPhone
	}
	return ChannelEmail
}

// Verification is the dual-channel verification state embedded in a booking.
// CodeHash is a bcrypt hash of the latest issued code; empty once the booking is confirmed.
type Verification struct {
	CodeHash      string
	ExpiresAt     *time.Time
	EmailVerified bool
	PhoneVerified bool
}

// IsVerified reports whether the given channel has been verified
func (v Verification) IsVerified(c Channel) bool {
	if c == ChannelEmail {
		return v.EmailVerified
	}
	return v.PhoneVerified
}

// WithVerified returns a copy with the channel flag set
func (v Verification) WithVerified(c Channel) Verification {
	if c == ChannelEmail {
		v.EmailVerified = true
	} else {
		v.PhoneVerified = true
	}
	return v
}

// BothVerified reports whether both channels are verified
func (v Verification) BothVerified() bool {
	return v.EmailVerified && v.PhoneVerified
}

// IsExpired reports whether the code has expired at now. A missing expiry counts as expired.
func (v Verification) IsExpired(now time.Time) bool {
	return v.ExpiresAt == nil || now.After(*v.ExpiresAt)
}

// Booking represents an inspection appointment
type Booking struct {
	ID              int64
	CustomerID      int64
	VehicleID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	Price           float64

	// Denormalized data for notifications and history
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	VehicleRegistration string
	VehicleType         VehicleType
	Notes               *string

	Verification Verification

	ConfirmedAt *time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.DeletedAt == nil
}

// IsDeleted returns true if the booking was soft-deleted
func (b *Booking) IsDeleted() bool {
	return b.DeletedAt != nil
}

// IsConfirmed returns true if both channels were verified
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanTransitionTo reports whether an administrative status change is allowed.
// Only cancelled and completed may be set externally, and only from a non-terminal state.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status.IsTerminal() {
		return false
	}
	return next == StatusCancelled || next == StatusCompleted
}

// StartsAt returns the absolute start of the booking in the date's location
func (b *Booking) StartsAt() (time.Time, error) {
	return b.StartTime.On(b.BookingDate)
}

// VerificationState is the derived verification progress of a booking
type VerificationState interface {
	isVerificationState()
}

// Unverified neither channel verified yet
type Unverified struct{}

// PartiallyVerified exactly one channel verified
type PartiallyVerified struct {
	Verified Channel
	Pending  Channel
}

// Confirmed both channels verified and the booking promoted
type Confirmed struct{}

func (Unverified) isVerificationState()        {}
func (PartiallyVerified) isVerificationState() {}
func (Confirmed) isVerificationState()         {}

// VerificationState derives the verification progress from status and flags
func (b *Booking) VerificationState() VerificationState {
	v := b.Verification
	switch {
	case b.Status == StatusConfirmed || v.BothVerified():
		return Confirmed{}
	case v.EmailVerified:
		return PartiallyVerified{Verified: ChannelEmail, Pending: ChannelPhone}
	case v.PhoneVerified:
		return PartiallyVerified{Verified: ChannelPhone, Pending: ChannelEmail}
	default:
		return Unverified{}
	}
}

// BookingsFilter filter for listing bookings in a date range
type BookingsFilter struct {
	StartDate        time.Time
	EndDate          time.Time // inclusive
	StartTime        *types.TimeString
	Status           *BookingStatus
	IncludeCancelled bool
	IncludeDeleted   bool
}
