package domain

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// TimeSlot is a single bookable start time within a day.
// Available = not blocked and reservations < capacity; Reserved = at least one active booking.
type TimeSlot struct {
	Time      types.TimeString
	Available bool
	Reserved  bool
}

// DaySlots is the availability of one calendar day
type DaySlots struct {
	Date    time.Time
	DayName string
	IsToday bool
	IsPast  bool
	Slots   []TimeSlot
}

// AvailableCount returns the number of available slots in the day
func (d *DaySlots) AvailableCount() int {
	count := 0
	for _, s := range d.Slots {
		if s.Available {
			count++
		}
	}
	return count
}

// BlockedSlot is an administrator-imposed exclusion of a (date, time) pair
type BlockedSlot struct {
	ID        int64
	Date      time.Time
	Time      types.TimeString
	Reason    string
	CreatedAt time.Time
}
