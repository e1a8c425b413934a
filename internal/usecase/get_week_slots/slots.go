package get_week_slots

import (
	"time"

	"github.com/m04kA/SMC-InspectionBooking/internal/domain"
	"github.com/m04kA/SMC-InspectionBooking/pkg/types"
)

// daysInWeek количество дней в сетке
const daysInWeek = 7

// BuildWeek строит сетку доступности на 7 дней начиная с weekStart.
// Результат - чистая функция входных данных: одинаковые аргументы дают одинаковую сетку.
//
// Правила:
// - заблокированный слот: available=false, reserved=false
// - иначе available = активных бронирований < capacity, reserved = бронирований > 0
// - для сегодняшнего дня слоты, начало которых не строго позже now, не попадают в результат
// - дни раньше сегодняшнего помечаются isPast и не содержат слотов
func BuildWeek(
	weekStart time.Time,
	now time.Time,
	bookings []*domain.Booking,
	blocked []*domain.BlockedSlot,
	rules domain.CalendarRules,
) []domain.DaySlots {
	loc := rules.Location
	nowLocal := now.In(loc)
	today := rules.Today(now)

	blockedByDate := indexBlocked(blocked)
	countsByDate := countReservations(bookings)

	y, m, d := weekStart.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)

	days := make([]domain.DaySlots, 0, daysInWeek)
	for i := 0; i < daysInWeek; i++ {
		date := start.AddDate(0, 0, i)
		day := domain.DaySlots{
			Date:    date,
			DayName: date.Weekday().String(),
			IsToday: date.Equal(today),
			IsPast:  date.Before(today),
			Slots:   []domain.TimeSlot{},
		}

		if day.IsPast {
			days = append(days, day)
			continue
		}

		key := date.Format(domain.DateFormat)
		dayBlocked := blockedByDate[key]
		dayCounts := countsByDate[key]

		for _, t := range rules.OpeningHours(date.Weekday()) {
			if day.IsToday && !startsAfter(date, t, nowLocal) {
				continue
			}

			if _, isBlocked := dayBlocked[t]; isBlocked {
				day.Slots = append(day.Slots, domain.TimeSlot{Time: t, Available: false, Reserved: false})
				continue
			}

			reservations := dayCounts[t]
			day.Slots = append(day.Slots, domain.TimeSlot{
				Time:      t,
				Available: reservations < rules.CapacityPerSlot,
				Reserved:  reservations > 0,
			})
		}

		days = append(days, day)
	}

	return days
}

// startsAfter проверяет, что слот t на дату date начинается строго позже now
func startsAfter(date time.Time, t types.TimeString, now time.Time) bool {
	slotStart, err := t.On(date)
	if err != nil {
		return false
	}
	return slotStart.After(now)
}

// indexBlocked строит lookup заблокированных времён по дате (точное совпадение HH:MM)
func indexBlocked(blocked []*domain.BlockedSlot) map[string]map[types.TimeString]struct{} {
	index := make(map[string]map[types.TimeString]struct{})
	for _, b := range blocked {
		if b == nil {
			continue
		}
		key := b.Date.Format(domain.DateFormat)
		if index[key] == nil {
			index[key] = make(map[types.TimeString]struct{})
		}
		index[key][b.Time] = struct{}{}
	}
	return index
}

// countReservations считает активные бронирования по дате и времени
func countReservations(bookings []*domain.Booking) map[string]map[types.TimeString]int {
	counts := make(map[string]map[types.TimeString]int)
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		key := b.BookingDate.Format(domain.DateFormat)
		if counts[key] == nil {
			counts[key] = make(map[types.TimeString]int)
		}
		counts[key][b.StartTime]++
	}
	return counts
}
