package domain

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// ClosedDay is the weekday on which no slots are offered
const ClosedDay = time.Sunday

var weekdayHours = mustTimes(
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
)

var saturdayHours = mustTimes(
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
)

func mustTimes(values ...string) []types.TimeString {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		result[i] = types.MustTimeString(v)
	}
	return result
}

// CalendarRules holds the fixed opening-hours table and slot constants.
// The zero value is not usable; use NewCalendarRules.
type CalendarRules struct {
	SlotDurationMinutes int
	CapacityPerSlot     int
	Location            *time.Location
}

// NewCalendarRules creates rules with the given capacity and timezone.
// Non-positive capacity falls back to DefaultCapacityPerSlot, nil location to UTC.
func NewCalendarRules(capacity int, loc *time.Location) CalendarRules {
	if capacity <= 0 {
		capacity = DefaultCapacityPerSlot
	}
	if loc == nil {
		loc = time.UTC
	}
	return CalendarRules{
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		CapacityPerSlot:     capacity,
		Location:            loc,
	}
}

// OpeningHours returns the ordered slot start times for a weekday.
// The returned slice is a copy.
func (r CalendarRules) OpeningHours(day time.Weekday) []types.TimeString {
	var table []types.TimeString
	switch day {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
		table = weekdayHours
	case time.Saturday:
		table = saturdayHours
	default:
		return []types.TimeString{}
	}
	result := make([]types.TimeString, len(table))
	copy(result, table)
	return result
}

// IsOffered reports whether t is a slot start time on the given weekday
func (r CalendarRules) IsOffered(day time.Weekday, t types.TimeString) bool {
	for _, open := range r.OpeningHours(day) {
		if open == t {
			return true
		}
	}
	return false
}

// IsClosed reports whether the weekday is the closed day
func (r CalendarRules) IsClosed(day time.Weekday) bool {
	return day == ClosedDay
}

// Today returns midnight of now's calendar date in the rules' location
func (r CalendarRules) Today(now time.Time) time.Time {
	return DateOnly(now.In(r.Location))
}

// DateOnly truncates t to midnight of its own calendar date, keeping its location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same calendar date (by their own locations)
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfWeek resolves to the Monday on or before date, shifted by weekOffset whole weeks.
// Sunday belongs to the week that started on the preceding Monday.
func StartOfWeek(date time.Time, weekOffset int) time.Time {
	day := DateOnly(date)
	daysSinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -daysSinceMonday+7*weekOffset)
}
