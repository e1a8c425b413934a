package domain

import "time"

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultCapacityPerSlot     = 1
	DefaultTimezone            = "Europe/Prague"
	DefaultCodeTTL             = 10 * time.Minute
	DefaultResendCooldown      = 30 * time.Second
)

// Verification code range (6 digits, no leading zero)
const (
	VerificationCodeMin    = 100000
	VerificationCodeMax    = 999999
	VerificationCodeLength = 6
)

// Business validation constants
const (
	MaxNotesLength        = 500
	MaxRegistrationLength = 16
	MaxBlockReasonLength  = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses bookings in these statuses do not occupy a slot
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses bookings in these statuses occupy a slot
var ActiveStatuses = []BookingStatus{
	StatusPendingVerification,
	StatusConfirmed,
	StatusCompleted,
}
